package models

import (
	"time"

	"gorm.io/gorm"
)

type Season struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Roster []SeasonPlayer `gorm:"foreignKey:SeasonID" json:"roster,omitempty"`
}

func (Season) TableName() string {
	return "seasons"
}

// SeasonPlayer is a roster entry tying a member to a season.
type SeasonPlayer struct {
	ID       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	SeasonID uint `gorm:"not null;uniqueIndex:idx_season_member" json:"season_id"`
	MemberID uint `gorm:"not null;uniqueIndex:idx_season_member" json:"member_id"`

	CreatedAt time.Time `json:"created_at"`

	Member Member `gorm:"foreignKey:MemberID;references:ID" json:"member,omitempty"`
}

func (SeasonPlayer) TableName() string {
	return "season_players"
}

// Standing is the per-season point ledger for a member. Points only ever
// increase, through match completion.
type Standing struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	SeasonID uint    `gorm:"not null;uniqueIndex:idx_standing_season_member" json:"season_id"`
	MemberID uint    `gorm:"not null;uniqueIndex:idx_standing_season_member" json:"member_id"`
	Points   float64 `gorm:"default:0" json:"points"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Member Member `gorm:"foreignKey:MemberID;references:ID" json:"member,omitempty"`
}

func (Standing) TableName() string {
	return "standings"
}

// StandingEntry is a ranked row of a season standings table.
type StandingEntry struct {
	Rank       int     `json:"rank"`
	MemberID   uint    `json:"member_id"`
	Username   string  `json:"username"`
	SkillLevel int     `json:"skill_level"`
	Points     float64 `json:"points"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
}

type CreateSeasonRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

type UpdateSeasonRequest struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

type RosterRequest struct {
	MemberID uint `json:"member_id" binding:"required"`
}
