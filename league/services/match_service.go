package services

import (
	"context"
	"errors"
	"log"
	"time"

	"cueu-api/league/cache"
	"cueu-api/league/models"
	"cueu-api/league/utils"

	"gorm.io/gorm"
)

// Notifier delivers league notifications. Delivery is best-effort: callers
// log failures and never abort the operation that triggered them.
type Notifier interface {
	RankingChanged(memberID uint, seasonID uint, oldRank, newRank int) error
	MatchReminder(memberID uint, match *models.Match) error
}

type MatchService struct {
	db            *gorm.DB
	seasonService *SeasonService
	notifier      Notifier
	cache         *cache.StandingsCache
}

func NewMatchService(db *gorm.DB, seasonService *SeasonService, notifier Notifier, standingsCache *cache.StandingsCache) *MatchService {
	return &MatchService{
		db:            db,
		seasonService: seasonService,
		notifier:      notifier,
		cache:         standingsCache,
	}
}

type MatchFilters struct {
	Page     int
	PerPage  int
	SeasonID *uint
	Week     *int
	PlayerID *uint
	Status   *string
}

func (s *MatchService) GetRecentMatches(limit int) ([]models.Match, error) {
	var matches []models.Match

	result := s.db.Order("created_at DESC").
		Limit(limit).
		Preload("Player1").
		Preload("Player2").
		Preload("Winner").
		Find(&matches)

	if result.Error != nil {
		return nil, result.Error
	}

	return matches, nil
}

func (s *MatchService) GetMatchByID(id uint) (*models.Match, error) {
	var match models.Match

	result := s.db.Preload("Player1").Preload("Player2").Preload("Winner").First(&match, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, result.Error
	}

	return &match, nil
}

func (s *MatchService) GetMatches(filters MatchFilters) (*models.PaginatedMatchResponse, error) {
	var matches []models.Match
	var total int64

	baseQuery := s.db.Model(&models.Match{})

	if filters.SeasonID != nil {
		baseQuery = baseQuery.Where("season_id = ?", *filters.SeasonID)
	}
	if filters.Week != nil {
		baseQuery = baseQuery.Where("week = ?", *filters.Week)
	}
	if filters.PlayerID != nil {
		baseQuery = baseQuery.Where("player1_id = ? OR player2_id = ?", *filters.PlayerID, *filters.PlayerID)
	}
	if filters.Status != nil {
		baseQuery = baseQuery.Where("status = ?", *filters.Status)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (filters.Page - 1) * filters.PerPage

	query := baseQuery.Order("created_at DESC").
		Preload("Player1").
		Preload("Player2").
		Preload("Winner").
		Offset(offset).
		Limit(filters.PerPage)

	if err := query.Find(&matches).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filters.PerPage) - 1) / int64(filters.PerPage))

	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PerPage,
		TotalPages: totalPages,
	}, nil
}

// CreateMatch schedules a planned match between two distinct roster members.
func (s *MatchService) CreateMatch(req models.CreateMatchRequest) (*models.Match, error) {
	if req.Player1ID == req.Player2ID {
		return nil, errors.New("player1 and player2 must be different, use a bye match for a self-pairing")
	}

	for _, memberID := range []uint{req.Player1ID, req.Player2ID} {
		var member models.Member
		if err := s.db.First(&member, memberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMemberNotFound
			}
			return nil, err
		}

		onRoster, err := s.seasonService.IsOnRoster(req.SeasonID, memberID)
		if err != nil {
			return nil, err
		}
		if !onRoster {
			return nil, ErrNotOnRoster
		}
	}

	match := models.Match{
		SeasonID:  req.SeasonID,
		Week:      req.Week,
		Player1ID: req.Player1ID,
		Player2ID: req.Player2ID,
		Status:    models.MatchStatusPlanned,
	}

	if err := s.db.Create(&match).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Player1").Preload("Player2").First(&match, match.ID).Error; err != nil {
		return nil, err
	}

	return &match, nil
}

// CreateByeMatch schedules a self-paired bye slot for a roster member.
func (s *MatchService) CreateByeMatch(seasonID uint, week int, memberID uint) (*models.Match, error) {
	var member models.Member
	if err := s.db.First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	onRoster, err := s.seasonService.IsOnRoster(seasonID, memberID)
	if err != nil {
		return nil, err
	}
	if !onRoster {
		return nil, ErrNotOnRoster
	}

	match := models.Match{
		SeasonID:  seasonID,
		Week:      week,
		Player1ID: memberID,
		Player2ID: memberID,
		Status:    models.MatchStatusBye,
	}

	if err := s.db.Create(&match).Error; err != nil {
		return nil, err
	}

	return &match, nil
}

// GetRackTargets resolves the current rack targets for a match from both
// players' live skill levels. Handlers use it to validate a submitted score
// before invoking CompleteMatch.
func (s *MatchService) GetRackTargets(matchID uint) (utils.RackTargets, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.RackTargets{}, ErrMatchNotFound
		}
		return utils.RackTargets{}, err
	}

	player1, player2, err := s.loadPlayers(s.db, &match)
	if err != nil {
		return utils.RackTargets{}, err
	}

	return utils.RacksNeeded(player1.SkillLevel, player2.SkillLevel)
}

// CompleteMatch records the final score of a planned match. Score validation
// happens at the handler boundary; this method trusts winnerID and the
// submitted racks. The match row, both members' counters and the season
// standings are updated in a single transaction, then rank changes are
// reported best-effort.
func (s *MatchService) CompleteMatch(matchID uint, winnerID uint, req models.CompleteMatchRequest) (*models.Match, error) {
	var match models.Match
	var ranksBefore map[uint]int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&match, matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatchNotFound
			}
			return err
		}

		if match.Status != models.MatchStatusPlanned {
			return ErrInvalidStateTransition
		}
		if !match.HasPlayer(winnerID) {
			return ErrNotAParticipant
		}

		player1, player2, err := s.loadPlayers(tx, &match)
		if err != nil {
			return err
		}

		targets, err := utils.RacksNeeded(player1.SkillLevel, player2.SkillLevel)
		if err != nil {
			return err
		}

		points1 := utils.RoundPoints(utils.MatchPoints(winnerID == match.Player1ID, req.Player1Score, targets.Player1))
		points2 := utils.RoundPoints(utils.MatchPoints(winnerID == match.Player2ID, req.Player2Score, targets.Player2))

		ranksBefore, err = s.rosterRanks(tx, match.SeasonID, match.Player1ID, match.Player2ID)
		if err != nil {
			return err
		}

		now := time.Now()
		match.Status = models.MatchStatusCompleted
		match.WinnerID = &winnerID
		match.Player1Score = &req.Player1Score
		match.Player2Score = &req.Player2Score
		match.Player1SkillLevel = &player1.SkillLevel
		match.Player2SkillLevel = &player2.SkillLevel
		match.Player1RacksNeeded = &targets.Player1
		match.Player2RacksNeeded = &targets.Player2
		match.Player1Points = &points1
		match.Player2Points = &points2
		match.CompletedAt = &now

		if err := tx.Save(&match).Error; err != nil {
			return err
		}

		if err := s.updateMemberStats(tx, match.Player1ID, match.Player2ID, winnerID); err != nil {
			return err
		}

		if err := s.addSeasonPoints(tx, match.SeasonID, match.Player1ID, points1); err != nil {
			return err
		}
		return s.addSeasonPoints(tx, match.SeasonID, match.Player2ID, points2)
	})
	if err != nil {
		return nil, err
	}

	s.afterStandingsUpdate(&match, ranksBefore)

	if err := s.db.Preload("Player1").Preload("Player2").Preload("Winner").First(&match, match.ID).Error; err != nil {
		return nil, err
	}

	return &match, nil
}

// ForfeitMatch completes a planned match as a forfeit. The forfeiting player
// gets the -1 sentinel score and 0 points; the opponent gets a full win at
// their own rack target and 10 points.
func (s *MatchService) ForfeitMatch(matchID uint, forfeitingID uint) (*models.Match, error) {
	var match models.Match
	var ranksBefore map[uint]int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&match, matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatchNotFound
			}
			return err
		}

		if match.Status != models.MatchStatusPlanned {
			return ErrInvalidStateTransition
		}
		if !match.HasPlayer(forfeitingID) {
			return ErrNotAParticipant
		}

		player1, player2, err := s.loadPlayers(tx, &match)
		if err != nil {
			return err
		}

		targets, err := utils.RacksNeeded(player1.SkillLevel, player2.SkillLevel)
		if err != nil {
			return err
		}

		winnerID := match.Player1ID
		if forfeitingID == match.Player1ID {
			winnerID = match.Player2ID
		}

		forfeitScore := -1
		score1, score2 := targets.Player1, forfeitScore
		points1, points2 := 10.0, 0.0
		if winnerID == match.Player2ID {
			score1, score2 = forfeitScore, targets.Player2
			points1, points2 = 0.0, 10.0
		}

		ranksBefore, err = s.rosterRanks(tx, match.SeasonID, match.Player1ID, match.Player2ID)
		if err != nil {
			return err
		}

		now := time.Now()
		match.Status = models.MatchStatusCompleted
		match.WinnerID = &winnerID
		match.Player1Score = &score1
		match.Player2Score = &score2
		match.Player1SkillLevel = &player1.SkillLevel
		match.Player2SkillLevel = &player2.SkillLevel
		match.Player1RacksNeeded = &targets.Player1
		match.Player2RacksNeeded = &targets.Player2
		match.Player1Points = &points1
		match.Player2Points = &points2
		match.CompletedAt = &now

		if err := tx.Save(&match).Error; err != nil {
			return err
		}

		if err := s.updateMemberStats(tx, match.Player1ID, match.Player2ID, winnerID); err != nil {
			return err
		}

		if err := s.addSeasonPoints(tx, match.SeasonID, match.Player1ID, points1); err != nil {
			return err
		}
		return s.addSeasonPoints(tx, match.SeasonID, match.Player2ID, points2)
	})
	if err != nil {
		return nil, err
	}

	s.afterStandingsUpdate(&match, ranksBefore)

	if err := s.db.Preload("Player1").Preload("Player2").Preload("Winner").First(&match, match.ID).Error; err != nil {
		return nil, err
	}

	return &match, nil
}

// AcceptByeMatch completes a self-paired bye slot. The sole player gets 10
// season points with a {0,0} score and no rack targets; a bye is not a
// win/loss event, so the member counters stay untouched.
func (s *MatchService) AcceptByeMatch(matchID uint) (*models.Match, error) {
	var match models.Match
	var ranksBefore map[uint]int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&match, matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatchNotFound
			}
			return err
		}

		if match.Status != models.MatchStatusBye || !match.IsBye() {
			return ErrInvalidStateTransition
		}

		var player models.Member
		if err := tx.First(&player, match.Player1ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}

		var err error
		ranksBefore, err = s.rosterRanks(tx, match.SeasonID, match.Player1ID)
		if err != nil {
			return err
		}

		now := time.Now()
		zero := 0
		points := 10.0
		winnerID := match.Player1ID

		match.Status = models.MatchStatusCompleted
		match.WinnerID = &winnerID
		match.Player1Score = &zero
		match.Player2Score = &zero
		match.Player1SkillLevel = &player.SkillLevel
		match.Player2SkillLevel = &player.SkillLevel
		match.Player1RacksNeeded = &zero
		match.Player2RacksNeeded = &zero
		// Both sides describe the same player; the award is booked once.
		match.Player1Points = &points
		match.Player2Points = &points
		match.CompletedAt = &now

		if err := tx.Save(&match).Error; err != nil {
			return err
		}

		return s.addSeasonPoints(tx, match.SeasonID, match.Player1ID, points)
	})
	if err != nil {
		return nil, err
	}

	s.afterStandingsUpdate(&match, ranksBefore)

	if err := s.db.Preload("Player1").First(&match, match.ID).Error; err != nil {
		return nil, err
	}

	return &match, nil
}

func (s *MatchService) loadPlayers(tx *gorm.DB, match *models.Match) (*models.Member, *models.Member, error) {
	var player1, player2 models.Member
	if err := tx.First(&player1, match.Player1ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrMemberNotFound
		}
		return nil, nil, err
	}
	if err := tx.First(&player2, match.Player2ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrMemberNotFound
		}
		return nil, nil, err
	}
	return &player1, &player2, nil
}

func (s *MatchService) updateMemberStats(tx *gorm.DB, player1ID, player2ID, winnerID uint) error {
	if err := tx.Model(&models.Member{}).Where("id IN ?", []uint{player1ID, player2ID}).
		Update("matches_played", gorm.Expr("matches_played + 1")).Error; err != nil {
		return err
	}

	if err := tx.Model(&models.Member{}).Where("id = ?", winnerID).
		Update("wins", gorm.Expr("wins + 1")).Error; err != nil {
		return err
	}

	loserID := player1ID
	if winnerID == player1ID {
		loserID = player2ID
	}
	return tx.Model(&models.Member{}).Where("id = ?", loserID).
		Update("losses", gorm.Expr("losses + 1")).Error
}

func (s *MatchService) addSeasonPoints(tx *gorm.DB, seasonID, memberID uint, delta float64) error {
	standing := models.Standing{SeasonID: seasonID, MemberID: memberID}
	if err := tx.Where(models.Standing{SeasonID: seasonID, MemberID: memberID}).
		FirstOrCreate(&standing).Error; err != nil {
		return err
	}

	return tx.Model(&models.Standing{}).
		Where("season_id = ? AND member_id = ?", seasonID, memberID).
		Update("points", gorm.Expr("points + ?", delta)).Error
}

func (s *MatchService) rosterRanks(tx *gorm.DB, seasonID uint, memberIDs ...uint) (map[uint]int, error) {
	ranks := make(map[uint]int, len(memberIDs))
	for _, memberID := range memberIDs {
		rank, err := s.seasonService.memberRank(tx, seasonID, memberID)
		if err != nil {
			return nil, err
		}
		ranks[memberID] = rank
	}
	return ranks, nil
}

// afterStandingsUpdate runs once the transaction committed: it invalidates
// the cached standings and reports rank changes. Failures here are logged
// and never surfaced.
func (s *MatchService) afterStandingsUpdate(match *models.Match, ranksBefore map[uint]int) {
	s.cache.Invalidate(context.Background(), match.SeasonID)

	if s.notifier == nil {
		return
	}

	for memberID, oldRank := range ranksBefore {
		newRank, err := s.seasonService.MemberRank(match.SeasonID, memberID)
		if err != nil {
			log.Printf("Failed to recompute rank for member %d in season %d: %v", memberID, match.SeasonID, err)
			continue
		}

		if newRank != oldRank {
			if err := s.notifier.RankingChanged(memberID, match.SeasonID, oldRank, newRank); err != nil {
				log.Printf("Failed to send ranking notification to member %d: %v", memberID, err)
			}
		}
	}
}
