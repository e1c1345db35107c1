package cron

import (
	"log"

	authUtils "cueu-api/auth/utils"
	"cueu-api/league/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type Scheduler struct {
	cron            *cron.Cron
	reminderService *services.ReminderService
	seasonService   *services.SeasonService
	db              *gorm.DB
}

func NewScheduler(reminderService *services.ReminderService, seasonService *services.SeasonService, db *gorm.DB) *Scheduler {
	// Create cron with seconds precision and logging
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &Scheduler{
		cron:            c,
		reminderService: reminderService,
		seasonService:   seasonService,
		db:              db,
	}
}

// Start initializes and starts all scheduled jobs
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	// Stale match reminders every hour, at minute 0
	if _, err := s.cron.AddFunc("0 0 * * * *", s.runStaleMatchReminders); err != nil {
		log.Printf("Error scheduling stale match reminder job: %v", err)
		return err
	}

	// Standings cache refresh every 10 minutes
	if _, err := s.cron.AddFunc("0 */10 * * * *", s.runStandingsRefresh); err != nil {
		log.Printf("Error scheduling standings refresh job: %v", err)
		return err
	}

	// Expired refresh token cleanup once a day at 04:00
	if _, err := s.cron.AddFunc("0 0 4 * * *", s.runTokenCleanup); err != nil {
		log.Printf("Error scheduling token cleanup job: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	s.cron.Stop()
	log.Println("Cron scheduler stopped")
}

// runStaleMatchReminders nudges players whose planned matches sat idle too long
func (s *Scheduler) runStaleMatchReminders() {
	log.Println("Running stale match reminder job...")

	staleCount, err := s.reminderService.GetStaleMatchesCount()
	if err != nil {
		log.Printf("Error checking stale matches count: %v", err)
		return
	}

	if staleCount == 0 {
		log.Println("No stale matches to remind about")
		return
	}

	log.Printf("Found %d stale matches, sending reminders", staleCount)

	if err := s.reminderService.SendStaleMatchReminders(); err != nil {
		log.Printf("Error during stale match reminders: %v", err)
		return
	}

	log.Println("Stale match reminder job completed successfully")
}

// runStandingsRefresh recomputes the cached standings of every active season
func (s *Scheduler) runStandingsRefresh() {
	if err := s.seasonService.RefreshStandingsCache(); err != nil {
		log.Printf("Error refreshing standings cache: %v", err)
	}
}

// runTokenCleanup removes expired refresh tokens
func (s *Scheduler) runTokenCleanup() {
	log.Println("Running refresh token cleanup job...")
	if err := authUtils.CleanExpiredTokens(s.db); err != nil {
		log.Printf("Error cleaning expired tokens: %v", err)
	}
}

// RunRemindersNow manually triggers the stale match reminder job (useful for testing)
func (s *Scheduler) RunRemindersNow() {
	log.Println("Manually triggering stale match reminder job...")
	s.runStaleMatchReminders()
}
