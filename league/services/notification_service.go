package services

import (
	"fmt"
	"log"

	"cueu-api/league/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationService persists notification rows for members. It implements
// the Notifier interface used by the match lifecycle.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		db: db,
	}
}

// RankingChanged records a ranking-changed notification for a member.
func (s *NotificationService) RankingChanged(memberID uint, seasonID uint, oldRank, newRank int) error {
	direction := "dropped"
	if newRank < oldRank {
		direction = "climbed"
	}

	notification := models.Notification{
		ID:       uuid.NewString(),
		MemberID: memberID,
		SeasonID: &seasonID,
		Type:     models.NotificationRankingChanged,
		Title:    "Your ranking changed",
		Body:     fmt.Sprintf("You %s from rank %d to rank %d.", direction, oldRank, newRank),
	}

	if err := s.db.Create(&notification).Error; err != nil {
		return err
	}

	log.Printf("Ranking notification for member %d: %d -> %d", memberID, oldRank, newRank)
	return nil
}

// MatchReminder records a reminder for a planned match that has been sitting
// unplayed.
func (s *NotificationService) MatchReminder(memberID uint, match *models.Match) error {
	notification := models.Notification{
		ID:       uuid.NewString(),
		MemberID: memberID,
		SeasonID: &match.SeasonID,
		Type:     models.NotificationMatchReminder,
		Title:    "Unplayed league match",
		Body:     fmt.Sprintf("Your week %d match is still waiting to be played.", match.Week),
	}

	return s.db.Create(&notification).Error
}

func (s *NotificationService) GetByMember(memberID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	var notifications []models.Notification

	query := s.db.Where("member_id = ?", memberID).Order("created_at DESC").Limit(limit)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}

	return notifications, nil
}

func (s *NotificationService) MarkRead(memberID uint, notificationID string) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND member_id = ?", notificationID, memberID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(memberID uint) error {
	return s.db.Model(&models.Notification{}).
		Where("member_id = ? AND read = ?", memberID, false).
		Update("read", true).Error
}
