package stats

import (
	"errors"
	"math"
	"sort"

	"github.com/XavierBriggs/fortuna/services/player-stats-service/pkg/models"
)

// NoCountry is reported as the best win-ratio country when there are no players
const NoCountry = "N/A"

// ErrEmptyCollection is returned by aggregates that divide by the player count
var ErrEmptyCollection = errors.New("statistics undefined for an empty player collection")

// Compute builds the full statistics view over players
func Compute(players []models.Player) (models.Statistics, error) {
	averageIMC, err := AverageIMC(players)
	if err != nil {
		return models.Statistics{}, err
	}

	medianHeight, err := MedianHeight(players)
	if err != nil {
		return models.Statistics{}, err
	}

	return models.Statistics{
		BestWinRatioCountry: BestWinRatioCountry(players),
		AverageIMC:          averageIMC,
		MedianHeight:        medianHeight,
	}, nil
}

// WinCount counts the wins (entries equal to 1) in a player's recent results
func WinCount(p models.Player) int {
	wins := 0
	for _, result := range p.Data.Last {
		if result == 1 {
			wins++
		}
	}
	return wins
}

// BestWinRatioCountry returns the country whose players have the highest
// average win count. The ratio is the mean of raw win counts per player,
// not a fraction of games won, so it can exceed 1.
// Ties go to the country encountered first in the collection.
func BestWinRatioCountry(players []models.Player) string {
	type countryWins struct {
		code    string
		wins    int
		players int
	}

	index := make(map[string]int)
	var countries []countryWins

	for _, p := range players {
		i, ok := index[p.Country.Code]
		if !ok {
			i = len(countries)
			index[p.Country.Code] = i
			countries = append(countries, countryWins{code: p.Country.Code})
		}
		countries[i].wins += WinCount(p)
		countries[i].players++
	}

	best := NoCountry
	bestRatio := math.Inf(-1)
	for _, c := range countries {
		ratio := float64(c.wins) / float64(c.players)
		if ratio > bestRatio {
			best = c.code
			bestRatio = ratio
		}
	}

	return best
}

// IMC calculates the body-mass index of a single player (kg / m^2)
func IMC(p models.Player) float64 {
	meters := float64(p.Data.Height) / 100.0
	return p.Data.Weight / math.Pow(meters, 2)
}

// AverageIMC calculates the mean body-mass index across all players
func AverageIMC(players []models.Player) (float64, error) {
	if len(players) == 0 {
		return 0, ErrEmptyCollection
	}

	total := 0.0
	for _, p := range players {
		total += IMC(p)
	}

	return total / float64(len(players)), nil
}

// MedianHeight returns the median player height in centimeters.
// For an even count the two middle heights are averaged with integer division.
func MedianHeight(players []models.Player) (int, error) {
	if len(players) == 0 {
		return 0, ErrEmptyCollection
	}

	heights := make([]int, len(players))
	for i, p := range players {
		heights[i] = p.Data.Height
	}
	sort.Ints(heights)

	middle := len(heights) / 2
	if len(heights)%2 == 0 {
		return (heights[middle-1] + heights[middle]) / 2, nil
	}
	return heights[middle], nil
}
