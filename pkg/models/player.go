package models

import "time"

// Player represents a ranked player from the head-to-head dataset
type Player struct {
	ID        int        `json:"id"`
	Firstname string     `json:"firstname"`
	Lastname  string     `json:"lastname"`
	Shortname string     `json:"shortname"`
	Sex       string     `json:"sex"`
	Country   Country    `json:"country"`
	Picture   string     `json:"picture"`
	Data      PlayerData `json:"data"`
}

// Country identifies the nation a player represents
type Country struct {
	Picture string `json:"picture"`
	Code    string `json:"code"`
}

// PlayerData holds the ranking and physical attributes of a player
type PlayerData struct {
	Rank   int     `json:"rank"`
	Points int     `json:"points"`
	Weight float64 `json:"weight"` // kilograms
	Height int     `json:"height"` // centimeters
	Age    int     `json:"age"`
	Last   []int   `json:"last"` // recent results, 1 = win
}

// PlayersDocument is the on-disk format of the dataset
type PlayersDocument struct {
	Players []Player `json:"players"`
}

// Dataset is the immutable player collection served by the API.
// Players must not be modified once the dataset is built.
type Dataset struct {
	Players    []Player
	SnapshotID string
	Source     string
	LoadedAt   time.Time
}

// Len returns the number of players in the dataset
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Players)
}
