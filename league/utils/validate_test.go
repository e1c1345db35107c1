package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateScore(t *testing.T) {
	// Targets {5,2} correspond to an uneven handicap pairing.
	targets := RackTargets{Player1: 5, Player2: 2}

	cases := []struct {
		name       string
		s1, s2     int
		wantValid  bool
		wantReason ScoreReason
		wantPlayer int
		wantWinner int
	}{
		{"player1 wins", 5, 1, true, "", 0, 1},
		{"player2 wins", 3, 2, true, "", 0, 2},
		{"negative player1", -1, 1, false, ReasonNegativeScore, 1, 0},
		{"negative player2", 2, -3, false, ReasonNegativeScore, 2, 0},
		{"tie", 1, 1, false, ReasonTie, 0, 0},
		{"both exceeded", 6, 3, false, ReasonBothExceeded, 0, 0},
		{"player1 exceeded", 6, 1, false, ReasonTargetExceeded, 1, 0},
		{"player2 exceeded", 4, 3, false, ReasonTargetExceeded, 2, 0},
		{"neither reached", 4, 1, false, ReasonNeitherReached, 0, 0},
		{"both reached", 5, 2, false, ReasonBothReached, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateScore(targets, tc.s1, tc.s2)
			assert.Equal(t, tc.wantValid, got.Valid)
			assert.Equal(t, tc.wantReason, got.Reason)
			assert.Equal(t, tc.wantPlayer, got.Player)
			assert.Equal(t, tc.wantWinner, got.Winner)
		})
	}
}

func TestValidateScoreSharedTargetTie(t *testing.T) {
	// When both players share the same target, an equal submitted score is a
	// tie, not both-reached: the tie rule has higher precedence.
	targets := RackTargets{Player1: 2, Player2: 2}
	got := ValidateScore(targets, 2, 2)
	assert.False(t, got.Valid)
	assert.Equal(t, ReasonTie, got.Reason)
}

func TestValidateScoreNegativeBeforeTie(t *testing.T) {
	// Rule 1 outranks rule 2: a negative tie reports negative_score.
	got := ValidateScore(RackTargets{Player1: 3, Player2: 3}, -1, -1)
	assert.Equal(t, ReasonNegativeScore, got.Reason)
	assert.Equal(t, 1, got.Player)
}

func TestValidateScoreEndToEndPairing(t *testing.T) {
	// Skill levels 4 vs 7 race 2-5 per the chart. Player1 reaching 2 racks
	// while player2 sits at 1 is a valid player1 win.
	targets, err := RacksNeeded(4, 7)
	assert.NoError(t, err)
	assert.Equal(t, RackTargets{Player1: 2, Player2: 5}, targets)

	got := ValidateScore(targets, 2, 1)
	assert.True(t, got.Valid)
	assert.Equal(t, 1, got.Winner)

	assert.Equal(t, 10.0, MatchPoints(true, 2, targets.Player1))
	assert.InDelta(t, 2.0, MatchPoints(false, 1, targets.Player2), 1e-9)
}
