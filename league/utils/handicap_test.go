package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRacksNeededFullChart(t *testing.T) {
	// Literal expected values for every matchup, keyed by [skill1][skill2].
	expected := map[int]map[int]RackTargets{
		2: {2: {2, 2}, 3: {2, 2}, 4: {2, 3}, 5: {2, 4}, 6: {2, 5}, 7: {2, 6}},
		3: {2: {2, 2}, 3: {2, 2}, 4: {2, 3}, 5: {2, 4}, 6: {2, 5}, 7: {2, 6}},
		4: {2: {3, 2}, 3: {3, 2}, 4: {3, 3}, 5: {3, 4}, 6: {3, 5}, 7: {2, 5}},
		5: {2: {4, 2}, 3: {4, 2}, 4: {4, 3}, 5: {4, 4}, 6: {4, 5}, 7: {3, 5}},
		6: {2: {5, 2}, 3: {5, 2}, 4: {5, 3}, 5: {5, 4}, 6: {5, 5}, 7: {4, 5}},
		7: {2: {6, 2}, 3: {6, 2}, 4: {5, 2}, 5: {5, 3}, 6: {5, 4}, 7: {5, 5}},
	}

	for s1 := 2; s1 <= 7; s1++ {
		for s2 := 2; s2 <= 7; s2++ {
			got, err := RacksNeeded(s1, s2)
			require.NoError(t, err, "RacksNeeded(%d, %d)", s1, s2)
			assert.Equal(t, expected[s1][s2], got, "RacksNeeded(%d, %d)", s1, s2)
		}
	}
}

func TestRacksNeededChartIsMirrorSymmetric(t *testing.T) {
	for s1 := 2; s1 <= 7; s1++ {
		for s2 := 2; s2 <= 7; s2++ {
			ab, err := RacksNeeded(s1, s2)
			require.NoError(t, err)
			ba, err := RacksNeeded(s2, s1)
			require.NoError(t, err)
			assert.Equal(t, ab.Player1, ba.Player2, "(%d,%d) vs (%d,%d)", s1, s2, s2, s1)
			assert.Equal(t, ab.Player2, ba.Player1, "(%d,%d) vs (%d,%d)", s1, s2, s2, s1)
		}
	}
}

func TestRacksNeededHandAuthoredQuirk(t *testing.T) {
	// (4,7) breaks the pattern set by (4,6); the chart is not formula-derived.
	got, err := RacksNeeded(4, 7)
	require.NoError(t, err)
	assert.Equal(t, RackTargets{Player1: 2, Player2: 5}, got)

	got, err = RacksNeeded(4, 6)
	require.NoError(t, err)
	assert.Equal(t, RackTargets{Player1: 3, Player2: 5}, got)
}

func TestRacksNeededInvalidSkillLevels(t *testing.T) {
	cases := []struct {
		name   string
		s1, s2 int
	}{
		{"below range first", 1, 5},
		{"below range second", 5, 1},
		{"above range first", 8, 5},
		{"above range second", 5, 8},
		{"zero", 0, 4},
		{"negative", -1, 4},
		{"both invalid", 0, 9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := RacksNeeded(tc.s1, tc.s2)
			assert.ErrorIs(t, err, ErrInvalidSkillLevel)
		})
	}
}
