package utils

// ScoreReason identifies the first rule a submitted score violated. The
// codes are part of the API contract: client messages key on them, so the
// rule order below must not change.
type ScoreReason string

const (
	ReasonNegativeScore  ScoreReason = "negative_score"
	ReasonTie            ScoreReason = "tie"
	ReasonBothExceeded   ScoreReason = "both_exceeded_target"
	ReasonTargetExceeded ScoreReason = "target_exceeded"
	ReasonNeitherReached ScoreReason = "neither_reached_target"
	ReasonBothReached    ScoreReason = "both_reached_target"
	ReasonLoserNotBelow  ScoreReason = "loser_score_not_below_target"
)

// ScoreValidation is the outcome of checking a submitted score pair.
// When Valid is true, Winner is 1 or 2. For the asymmetric rejection
// reasons (target_exceeded), Player names the offending player.
type ScoreValidation struct {
	Valid  bool        `json:"valid"`
	Reason ScoreReason `json:"reason,omitempty"`
	Player int         `json:"player,omitempty"`
	Winner int         `json:"winner,omitempty"`
}

// ValidateScore checks a submitted score pair against the rack targets for
// the match. Rules are applied in a fixed order and the first violated rule
// determines the rejection reason:
//
//  1. no negative scores
//  2. no ties
//  3. both scores above their targets
//  4. exactly one score above its target
//  5. neither score reached its target
//  6. both scores reached their targets
//  7. the loser's score must sit strictly below the loser's own target
//
// If all rules pass, the winner is the player whose score equals their
// target (equivalently the higher raw score).
func ValidateScore(targets RackTargets, score1, score2 int) ScoreValidation {
	if score1 < 0 {
		return ScoreValidation{Reason: ReasonNegativeScore, Player: 1}
	}
	if score2 < 0 {
		return ScoreValidation{Reason: ReasonNegativeScore, Player: 2}
	}

	if score1 == score2 {
		return ScoreValidation{Reason: ReasonTie}
	}

	exceeded1 := score1 > targets.Player1
	exceeded2 := score2 > targets.Player2
	if exceeded1 && exceeded2 {
		return ScoreValidation{Reason: ReasonBothExceeded}
	}
	if exceeded1 {
		return ScoreValidation{Reason: ReasonTargetExceeded, Player: 1}
	}
	if exceeded2 {
		return ScoreValidation{Reason: ReasonTargetExceeded, Player: 2}
	}

	reached1 := score1 == targets.Player1
	reached2 := score2 == targets.Player2
	if !reached1 && !reached2 {
		return ScoreValidation{Reason: ReasonNeitherReached}
	}
	if reached1 && reached2 {
		return ScoreValidation{Reason: ReasonBothReached}
	}

	// Exactly one player reached their target; the other must be strictly
	// below their own target.
	if reached1 {
		if score2 >= targets.Player2 {
			return ScoreValidation{Reason: ReasonLoserNotBelow, Player: 2}
		}
		return ScoreValidation{Valid: true, Winner: 1}
	}

	if score1 >= targets.Player1 {
		return ScoreValidation{Reason: ReasonLoserNotBelow, Player: 1}
	}
	return ScoreValidation{Valid: true, Winner: 2}
}
