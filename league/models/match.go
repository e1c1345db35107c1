package models

import (
	"time"

	"gorm.io/gorm"
)

// Match statuses. A match is created as planned (or bye for a self-paired
// roster slot) and transitions exactly once to completed.
const (
	MatchStatusPlanned   = "planned"
	MatchStatusBye       = "bye"
	MatchStatusCompleted = "completed"
)

type Match struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	SeasonID  uint   `gorm:"not null;index" json:"season_id"`
	Week      int    `gorm:"not null" json:"week"`
	Player1ID uint   `gorm:"not null;constraint:OnDelete:CASCADE" json:"player1_id"`
	Player2ID uint   `gorm:"not null;constraint:OnDelete:CASCADE" json:"player2_id"`
	Status    string `gorm:"size:20;default:planned" json:"status"` // planned, bye, completed
	WinnerID  *uint  `json:"winner_id"`

	// Submitted rack counts. -1 marks a forfeit, not a real rack count.
	Player1Score *int `json:"player1_score"`
	Player2Score *int `json:"player2_score"`

	// Snapshot captured at completion time so historical display stays
	// stable even if a player's live skill level later changes.
	Player1SkillLevel  *int     `json:"player1_skill_level"`
	Player2SkillLevel  *int     `json:"player2_skill_level"`
	Player1RacksNeeded *int     `json:"player1_racks_needed"`
	Player2RacksNeeded *int     `json:"player2_racks_needed"`
	Player1Points      *float64 `json:"player1_points"`
	Player2Points      *float64 `json:"player2_points"`

	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt *time.Time     `json:"completed_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Season  Season  `gorm:"foreignKey:SeasonID;references:ID" json:"season,omitempty"`
	Player1 Member  `gorm:"foreignKey:Player1ID;references:ID" json:"player1,omitempty"`
	Player2 Member  `gorm:"foreignKey:Player2ID;references:ID" json:"player2,omitempty"`
	Winner  *Member `gorm:"foreignKey:WinnerID;references:ID" json:"winner,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

// IsBye reports whether the match is a self-paired bye slot.
func (m *Match) IsBye() bool {
	return m.Player1ID == m.Player2ID
}

// HasPlayer reports whether the given member takes part in the match.
func (m *Match) HasPlayer(memberID uint) bool {
	return m.Player1ID == memberID || m.Player2ID == memberID
}

type PaginatedMatchResponse struct {
	Data       []Match `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

type CreateMatchRequest struct {
	SeasonID  uint `json:"season_id" binding:"required"`
	Week      int  `json:"week" binding:"required,min=1"`
	Player1ID uint `json:"player1_id" binding:"required"`
	Player2ID uint `json:"player2_id" binding:"required"`
}

type CompleteMatchRequest struct {
	Player1Score int `json:"player1_score"`
	Player2Score int `json:"player2_score"`
}

type ForfeitMatchRequest struct {
	ForfeitingPlayerID uint `json:"forfeiting_player_id" binding:"required"`
}
