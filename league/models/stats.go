package models

type Stats struct {
	TotalMembers         int64 `json:"total_members"`
	TotalMatches         int64 `json:"total_matches"`
	CompletedMatches     int64 `json:"completed_matches"`
	MatchesLast7Days     int64 `json:"matches_last_7_days"`
	MatchesPrevious7Days int64 `json:"matches_previous_7_days"`
}
