package models

import (
	"time"

	"gorm.io/gorm"
)

type Member struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Username      string         `gorm:"size:255;not null" json:"username"`
	SkillLevel    int            `gorm:"default:3" json:"skill_level"` // APA skill level, 2-7
	MatchesPlayed int            `gorm:"default:0" json:"matches_played"`
	Wins          int            `gorm:"default:0" json:"wins"`
	Losses        int            `gorm:"default:0" json:"losses"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Player1Matches []Match `gorm:"foreignKey:Player1ID" json:"player1_matches,omitempty"`
	Player2Matches []Match `gorm:"foreignKey:Player2ID" json:"player2_matches,omitempty"`
}

func (Member) TableName() string {
	return "members"
}

// SkillLevelMin and SkillLevelMax bound the valid APA skill levels.
const (
	SkillLevelMin = 2
	SkillLevelMax = 7
)

type PaginatedMembersResponse struct {
	Data       []Member `json:"data"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalPages int      `json:"totalPages"`
}

type UpdateSkillLevelRequest struct {
	SkillLevel int `json:"skill_level" binding:"required,min=2,max=7"`
}
