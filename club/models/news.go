package models

import (
	"time"

	"gorm.io/gorm"
)

type News struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	Body        string         `json:"body" gorm:"type:text"`
	AuthorID    uint           `json:"author_id" gorm:"not null;index"`
	Published   bool           `json:"published" gorm:"default:false"`
	PublishedAt *time.Time     `json:"published_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (News) TableName() string {
	return "news"
}

type CreateNewsRequest struct {
	Title     string `json:"title" binding:"required"`
	Body      string `json:"body" binding:"required"`
	Published bool   `json:"published"`
}

type UpdateNewsRequest struct {
	Title     *string `json:"title,omitempty"`
	Body      *string `json:"body,omitempty"`
	Published *bool   `json:"published,omitempty"`
}
