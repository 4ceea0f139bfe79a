package stats_test

import (
	"errors"
	"math"
	"testing"

	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/stats"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/pkg/models"
)

func player(id int, country string, height int, weight float64, last ...int) models.Player {
	return models.Player{
		ID:      id,
		Country: models.Country{Code: country},
		Data: models.PlayerData{
			Height: height,
			Weight: weight,
			Last:   last,
		},
	}
}

func heights(hs ...int) []models.Player {
	players := make([]models.Player, len(hs))
	for i, h := range hs {
		players[i] = player(i+1, "FRA", h, 80)
	}
	return players
}

func TestWinCount(t *testing.T) {
	tests := []struct {
		name     string
		last     []int
		expected int
	}{
		{"empty", nil, 0},
		{"all losses", []int{0, 0, 0}, 0},
		{"mixed", []int{1, 0, 1, 1, 0}, 3},
		{"all wins", []int{1, 1, 1, 1, 1}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stats.WinCount(player(1, "FRA", 180, 80, tt.last...))
			if got != tt.expected {
				t.Errorf("expected %d wins, got %d", tt.expected, got)
			}
		})
	}
}

func TestBestWinRatioCountry(t *testing.T) {
	tests := []struct {
		name     string
		players  []models.Player
		expected string
	}{
		{
			name: "higher mean win count wins",
			players: []models.Player{
				player(1, "FR", 180, 80, 1, 1, 0),
				player(2, "FR", 180, 80, 0, 0, 0),
				player(3, "US", 180, 80, 1, 1, 1),
			},
			expected: "US",
		},
		{
			name: "ratio is a mean of raw counts, not a fraction",
			players: []models.Player{
				player(1, "SRB", 188, 80, 1, 1, 1, 1, 0),
				player(2, "SUI", 183, 81, 1),
			},
			expected: "SRB",
		},
		{
			name: "tie keeps first encountered country",
			players: []models.Player{
				player(1, "ESP", 185, 85, 1, 0),
				player(2, "USA", 175, 72, 0, 1),
				player(3, "ESP", 185, 85, 1, 0),
			},
			expected: "ESP",
		},
		{
			name: "empty results count as zero wins",
			players: []models.Player{
				player(1, "USA", 175, 72, 1, 1),
				player(2, "USA", 185, 74),
				player(3, "ESP", 185, 85, 1, 1),
			},
			expected: "ESP",
		},
		{
			name: "nobody won anything",
			players: []models.Player{
				player(1, "GBR", 190, 90),
				player(2, "ITA", 188, 77, 0),
			},
			expected: "GBR",
		},
		{
			name:     "no players",
			players:  nil,
			expected: stats.NoCountry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stats.BestWinRatioCountry(tt.players)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestAverageIMC(t *testing.T) {
	tests := []struct {
		name     string
		players  []models.Player
		expected float64
	}{
		{
			name:     "single player",
			players:  []models.Player{player(1, "FRA", 200, 80)},
			expected: 20.0,
		},
		{
			name: "mean of individual indexes",
			players: []models.Player{
				player(1, "FRA", 200, 80),  // 20.0
				player(2, "USA", 100, 30),  // 30.0
				player(3, "ESP", 200, 100), // 25.0
			},
			expected: 25.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stats.AverageIMC(tt.players)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %.4f, got %.4f", tt.expected, got)
			}
		})
	}
}

func TestAverageIMC_Empty(t *testing.T) {
	_, err := stats.AverageIMC(nil)
	if !errors.Is(err, stats.ErrEmptyCollection) {
		t.Errorf("expected ErrEmptyCollection, got %v", err)
	}
}

func TestMedianHeight(t *testing.T) {
	tests := []struct {
		name     string
		players  []models.Player
		expected int
	}{
		{"odd count", heights(170, 180, 190), 180},
		{"even count", heights(170, 180, 190, 200), 185},
		{"unsorted input", heights(200, 170, 190, 180), 185},
		{"even count floors", heights(171, 180), 175},
		{"single player", heights(183), 183},
		{"duplicates", heights(185, 175, 185, 188, 185), 185},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stats.MedianHeight(tt.players)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestMedianHeight_Empty(t *testing.T) {
	_, err := stats.MedianHeight([]models.Player{})
	if !errors.Is(err, stats.ErrEmptyCollection) {
		t.Errorf("expected ErrEmptyCollection, got %v", err)
	}
}

func TestMedianHeight_DoesNotReorderInput(t *testing.T) {
	players := heights(190, 170, 180)

	if _, err := stats.MedianHeight(players); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if players[0].Data.Height != 190 || players[1].Data.Height != 170 || players[2].Data.Height != 180 {
		t.Errorf("input reordered: %+v", players)
	}
}

func TestCompute(t *testing.T) {
	players := []models.Player{
		player(1, "FR", 170, 80, 1, 1, 0),
		player(2, "FR", 200, 80, 0, 0, 0),
		player(3, "US", 190, 80, 1, 1, 1),
	}

	got, err := stats.Compute(players)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.BestWinRatioCountry != "US" {
		t.Errorf("expected best country US, got %s", got.BestWinRatioCountry)
	}
	if got.MedianHeight != 190 {
		t.Errorf("expected median height 190, got %d", got.MedianHeight)
	}

	expectedIMC := (stats.IMC(players[0]) + stats.IMC(players[1]) + stats.IMC(players[2])) / 3
	if math.Abs(got.AverageIMC-expectedIMC) > 1e-9 {
		t.Errorf("expected average IMC %.4f, got %.4f", expectedIMC, got.AverageIMC)
	}
}

func TestCompute_Empty(t *testing.T) {
	_, err := stats.Compute(nil)
	if !errors.Is(err, stats.ErrEmptyCollection) {
		t.Errorf("expected ErrEmptyCollection, got %v", err)
	}
}
