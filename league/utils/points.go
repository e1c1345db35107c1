package utils

import "math"

// MatchPoints converts a match result into a 0-10 point score.
// The winner always gets the full 10 points. The loser gets linear partial
// credit for racks won against their own target. A zero racksNeeded yields 0
// so the function never divides by zero.
//
// The result is not rounded here; callers round before persisting.
func MatchPoints(isWinner bool, racksWon, racksNeeded int) float64 {
	if isWinner {
		return 10.0
	}
	if racksNeeded == 0 {
		return 0.0
	}
	return 10.0 * float64(racksWon) / float64(racksNeeded)
}

// RoundPoints rounds a point score to 2 decimal places for persistence.
func RoundPoints(points float64) float64 {
	return math.Round(points*100) / 100
}
