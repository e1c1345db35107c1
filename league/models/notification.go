package models

import (
	"time"
)

// Notification types emitted by the league module.
const (
	NotificationRankingChanged = "ranking_changed"
	NotificationMatchReminder  = "match_reminder"
)

type Notification struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"` // uuid
	MemberID uint   `gorm:"not null;index" json:"member_id"`
	SeasonID *uint  `json:"season_id"`
	Type     string `gorm:"size:40;not null" json:"type"`
	Title    string `gorm:"size:255" json:"title"`
	Body     string `json:"body"`
	Read     bool   `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
