package utils

import "fmt"

// ErrInvalidSkillLevel is returned when a skill level falls outside [2,7].
var ErrInvalidSkillLevel = fmt.Errorf("skill level must be between 2 and 7")

// RackTargets holds the number of racks each player must win to take the match.
type RackTargets struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

// race is one entry of the APA handicap chart.
type race struct {
	p1, p2 int
}

// apaRaceChart is the APA 8-ball race chart for skill levels 2-7, indexed by
// [skill1-2][skill2-2]. The entries are hand-authored, not derived from a
// formula: note (4,7) -> 2-5 while (4,6) -> 3-5. Mirrored entries swap.
var apaRaceChart = [6][6]race{
	// vs:    2       3       4       5       6       7
	/* 2 */ {{2, 2}, {2, 2}, {2, 3}, {2, 4}, {2, 5}, {2, 6}},
	/* 3 */ {{2, 2}, {2, 2}, {2, 3}, {2, 4}, {2, 5}, {2, 6}},
	/* 4 */ {{3, 2}, {3, 2}, {3, 3}, {3, 4}, {3, 5}, {2, 5}},
	/* 5 */ {{4, 2}, {4, 2}, {4, 3}, {4, 4}, {4, 5}, {3, 5}},
	/* 6 */ {{5, 2}, {5, 2}, {5, 3}, {5, 4}, {5, 5}, {4, 5}},
	/* 7 */ {{6, 2}, {6, 2}, {5, 2}, {5, 3}, {5, 4}, {5, 5}},
}

// ValidSkillLevel reports whether the given skill level is inside [2,7].
func ValidSkillLevel(level int) bool {
	return level >= 2 && level <= 7
}

// RacksNeeded looks up the race chart for a pair of skill levels and returns
// how many racks each player must win. Both levels must be in [2,7].
func RacksNeeded(skill1, skill2 int) (RackTargets, error) {
	if !ValidSkillLevel(skill1) || !ValidSkillLevel(skill2) {
		return RackTargets{}, ErrInvalidSkillLevel
	}

	entry := apaRaceChart[skill1-2][skill2-2]
	return RackTargets{Player1: entry.p1, Player2: entry.p2}, nil
}
