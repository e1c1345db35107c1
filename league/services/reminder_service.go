package services

import (
	"log"
	"time"

	"cueu-api/league/models"

	"gorm.io/gorm"
)

// staleAfter is how long a planned match may sit unplayed before both
// players get a reminder notification.
const staleAfter = 7 * 24 * time.Hour

// ReminderService nudges players about planned matches that have been
// sitting unplayed. It never transitions matches itself: the lifecycle
// stays in the hands of the players.
type ReminderService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewReminderService(db *gorm.DB, notifier Notifier) *ReminderService {
	return &ReminderService{
		db:       db,
		notifier: notifier,
	}
}

// GetStaleMatchesCount returns how many planned matches are older than the
// reminder cutoff.
func (s *ReminderService) GetStaleMatchesCount() (int64, error) {
	cutoff := time.Now().Add(-staleAfter)

	var count int64
	result := s.db.Model(&models.Match{}).
		Where("status = ? AND created_at < ?", models.MatchStatusPlanned, cutoff).
		Count(&count)

	return count, result.Error
}

// SendStaleMatchReminders notifies both players of every stale planned
// match. Notification failures are logged and skipped; the job keeps going.
func (s *ReminderService) SendStaleMatchReminders() error {
	cutoff := time.Now().Add(-staleAfter)

	var staleMatches []models.Match
	result := s.db.Where("status = ? AND created_at < ?", models.MatchStatusPlanned, cutoff).
		Find(&staleMatches)
	if result.Error != nil {
		log.Printf("Error finding stale matches: %v", result.Error)
		return result.Error
	}

	if len(staleMatches) == 0 {
		log.Println("No stale matches found")
		return nil
	}

	log.Printf("Found %d stale matches to remind about", len(staleMatches))

	for i := range staleMatches {
		match := &staleMatches[i]
		for _, memberID := range []uint{match.Player1ID, match.Player2ID} {
			if err := s.notifier.MatchReminder(memberID, match); err != nil {
				log.Printf("Error sending reminder for match ID %d to member %d: %v", match.ID, memberID, err)
				continue
			}
		}
	}

	return nil
}
