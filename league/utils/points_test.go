package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPointsWinnerAlwaysTen(t *testing.T) {
	for racksWon := 0; racksWon <= 7; racksWon++ {
		for racksNeeded := 0; racksNeeded <= 7; racksNeeded++ {
			assert.Equal(t, 10.0, MatchPoints(true, racksWon, racksNeeded),
				"winner with %d/%d racks", racksWon, racksNeeded)
		}
	}
}

func TestMatchPointsLoser(t *testing.T) {
	cases := []struct {
		name        string
		racksWon    int
		racksNeeded int
		want        float64
	}{
		{"zero target guards division", 3, 0, 0.0},
		{"no racks won", 0, 5, 0.0},
		{"partial credit", 3, 5, 6.0},
		{"one of two", 1, 2, 5.0},
		{"one of five", 1, 5, 2.0},
		{"four of five", 4, 5, 8.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, MatchPoints(false, tc.racksWon, tc.racksNeeded), 1e-9)
		})
	}
}

func TestRoundPoints(t *testing.T) {
	assert.Equal(t, 3.33, RoundPoints(10.0/3.0))
	assert.Equal(t, 6.67, RoundPoints(20.0/3.0))
	assert.Equal(t, 10.0, RoundPoints(10.0))
	assert.Equal(t, 0.0, RoundPoints(0.0))
}
