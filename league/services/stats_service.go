package services

import (
	"time"

	"cueu-api/league/models"

	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		db: db,
	}
}

func (s *StatsService) GetStats() (*models.Stats, error) {
	var totalMembers int64
	var totalMatches int64
	var completedMatches int64
	var matchesLast7Days int64
	var matchesPrevious7Days int64

	if err := s.db.Model(&models.Member{}).Count(&totalMembers).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Match{}).Count(&totalMatches).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Match{}).
		Where("status = ?", models.MatchStatusCompleted).
		Count(&completedMatches).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	sevenDaysAgo := now.AddDate(0, 0, -7)
	fourteenDaysAgo := now.AddDate(0, 0, -14)

	if err := s.db.Model(&models.Match{}).
		Where("completed_at >= ?", sevenDaysAgo).
		Count(&matchesLast7Days).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Match{}).
		Where("completed_at >= ? AND completed_at < ?", fourteenDaysAgo, sevenDaysAgo).
		Count(&matchesPrevious7Days).Error; err != nil {
		return nil, err
	}

	return &models.Stats{
		TotalMembers:         totalMembers,
		TotalMatches:         totalMatches,
		CompletedMatches:     completedMatches,
		MatchesLast7Days:     matchesLast7Days,
		MatchesPrevious7Days: matchesPrevious7Days,
	}, nil
}
