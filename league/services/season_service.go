package services

import (
	"context"
	"errors"

	"cueu-api/league/cache"
	"cueu-api/league/models"

	"gorm.io/gorm"
)

type SeasonService struct {
	db    *gorm.DB
	cache *cache.StandingsCache
}

func NewSeasonService(db *gorm.DB, standingsCache *cache.StandingsCache) *SeasonService {
	return &SeasonService{
		db:    db,
		cache: standingsCache,
	}
}

func (s *SeasonService) CreateSeason(req models.CreateSeasonRequest) (*models.Season, error) {
	season := models.Season{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Active:    true,
	}

	if err := s.db.Create(&season).Error; err != nil {
		return nil, err
	}

	return &season, nil
}

func (s *SeasonService) GetSeasonByID(id uint) (*models.Season, error) {
	var season models.Season

	result := s.db.Preload("Roster.Member").First(&season, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, result.Error
	}

	return &season, nil
}

func (s *SeasonService) GetSeasons(activeOnly bool) ([]models.Season, error) {
	var seasons []models.Season

	query := s.db.Order("start_date DESC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Find(&seasons).Error; err != nil {
		return nil, err
	}

	return seasons, nil
}

func (s *SeasonService) UpdateSeason(id uint, req models.UpdateSeasonRequest) (*models.Season, error) {
	var season models.Season
	if err := s.db.First(&season, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		season.Name = *req.Name
	}
	if req.Active != nil {
		season.Active = *req.Active
	}

	if err := s.db.Save(&season).Error; err != nil {
		return nil, err
	}

	return &season, nil
}

// AddToRoster puts a member on the season roster and opens their standings
// ledger at 0 points.
func (s *SeasonService) AddToRoster(seasonID, memberID uint) error {
	var season models.Season
	if err := s.db.First(&season, seasonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSeasonNotFound
		}
		return err
	}

	var member models.Member
	if err := s.db.First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		entry := models.SeasonPlayer{SeasonID: seasonID, MemberID: memberID}
		if err := tx.Where(entry).FirstOrCreate(&entry).Error; err != nil {
			return err
		}

		standing := models.Standing{SeasonID: seasonID, MemberID: memberID}
		return tx.Where(standing).FirstOrCreate(&standing).Error
	})
}

// RemoveFromRoster drops a member from the roster. The standings ledger row
// is kept so completed match history stays consistent.
func (s *SeasonService) RemoveFromRoster(seasonID, memberID uint) error {
	result := s.db.Where("season_id = ? AND member_id = ?", seasonID, memberID).
		Delete(&models.SeasonPlayer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotOnRoster
	}

	s.cache.Invalidate(context.Background(), seasonID)
	return nil
}

func (s *SeasonService) GetRoster(seasonID uint) ([]models.SeasonPlayer, error) {
	var roster []models.SeasonPlayer

	if err := s.db.Where("season_id = ?", seasonID).
		Preload("Member").
		Find(&roster).Error; err != nil {
		return nil, err
	}

	return roster, nil
}

func (s *SeasonService) IsOnRoster(seasonID, memberID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.SeasonPlayer{}).
		Where("season_id = ? AND member_id = ?", seasonID, memberID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetStandings returns the ranked standings table for a season, serving from
// the Redis cache when possible.
func (s *SeasonService) GetStandings(seasonID uint) ([]models.StandingEntry, error) {
	ctx := context.Background()

	if entries, ok := s.cache.Get(ctx, seasonID); ok {
		return entries, nil
	}

	entries, err := s.computeStandings(s.db, seasonID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, seasonID, entries)
	return entries, nil
}

// MemberRank returns the 1-based rank of a member within the season roster.
func (s *SeasonService) MemberRank(seasonID, memberID uint) (int, error) {
	return s.memberRank(s.db, seasonID, memberID)
}

func (s *SeasonService) memberRank(tx *gorm.DB, seasonID, memberID uint) (int, error) {
	entries, err := s.computeStandings(tx, seasonID)
	if err != nil {
		return 0, err
	}

	for _, entry := range entries {
		if entry.MemberID == memberID {
			return entry.Rank, nil
		}
	}

	return 0, ErrNotOnRoster
}

// computeStandings builds the ranked table from the standings ledger, ordered
// by points descending with member id as a deterministic tie-break.
func (s *SeasonService) computeStandings(tx *gorm.DB, seasonID uint) ([]models.StandingEntry, error) {
	var standings []models.Standing

	if err := tx.Where("season_id = ?", seasonID).
		Preload("Member").
		Order("points DESC, member_id ASC").
		Find(&standings).Error; err != nil {
		return nil, err
	}

	entries := make([]models.StandingEntry, 0, len(standings))
	for i, standing := range standings {
		entries = append(entries, models.StandingEntry{
			Rank:       i + 1,
			MemberID:   standing.MemberID,
			Username:   standing.Member.Username,
			SkillLevel: standing.Member.SkillLevel,
			Points:     standing.Points,
			Wins:       standing.Member.Wins,
			Losses:     standing.Member.Losses,
		})
	}

	return entries, nil
}

// RefreshStandingsCache recomputes and re-caches standings for all active
// seasons. Called from the cron scheduler.
func (s *SeasonService) RefreshStandingsCache() error {
	seasons, err := s.GetSeasons(true)
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, season := range seasons {
		entries, err := s.computeStandings(s.db, season.ID)
		if err != nil {
			return err
		}
		s.cache.Set(ctx, season.ID, entries)
	}

	return nil
}
