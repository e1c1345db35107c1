package services

import (
	"testing"

	"cueu-api/league/cache"
	"cueu-api/league/models"
	"cueu-api/league/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Member{},
		&models.Season{},
		&models.SeasonPlayer{},
		&models.Standing{},
		&models.Match{},
		&models.Notification{},
	))

	return db
}

type leagueFixture struct {
	db            *gorm.DB
	matchService  *MatchService
	seasonService *SeasonService
	notifications *NotificationService
	season        models.Season
}

func setupLeague(t *testing.T) *leagueFixture {
	t.Helper()

	db := setupTestDB(t)
	standingsCache := cache.NewStandingsCache(nil)
	seasonService := NewSeasonService(db, standingsCache)
	notifications := NewNotificationService(db)
	matchService := NewMatchService(db, seasonService, notifications, standingsCache)

	season := models.Season{Name: "Fall League", Active: true}
	require.NoError(t, db.Create(&season).Error)

	return &leagueFixture{
		db:            db,
		matchService:  matchService,
		seasonService: seasonService,
		notifications: notifications,
		season:        season,
	}
}

func (f *leagueFixture) addMember(t *testing.T, id uint, username string, skillLevel int) models.Member {
	t.Helper()

	member := models.Member{ID: id, Username: username, SkillLevel: skillLevel}
	require.NoError(t, f.db.Create(&member).Error)
	require.NoError(t, f.seasonService.AddToRoster(f.season.ID, id))
	return member
}

func (f *leagueFixture) plannedMatch(t *testing.T, p1, p2 uint) models.Match {
	t.Helper()

	match, err := f.matchService.CreateMatch(models.CreateMatchRequest{
		SeasonID:  f.season.ID,
		Week:      1,
		Player1ID: p1,
		Player2ID: p2,
	})
	require.NoError(t, err)
	return *match
}

func TestCompleteMatch(t *testing.T) {
	f := setupLeague(t)
	f.addMember(t, 1, "alice", 4)
	f.addMember(t, 2, "bob", 7)
	match := f.plannedMatch(t, 1, 2)

	// Skill 4 vs 7 races 2-5; alice reaches 2 racks, bob sits at 1.
	completed, err := f.matchService.CompleteMatch(match.ID, 1, models.CompleteMatchRequest{
		Player1Score: 2,
		Player2Score: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, models.MatchStatusCompleted, completed.Status)
	require.NotNil(t, completed.WinnerID)
	assert.Equal(t, uint(1), *completed.WinnerID)
	assert.NotNil(t, completed.CompletedAt)

	// Snapshot fields captured at completion time.
	assert.Equal(t, 4, *completed.Player1SkillLevel)
	assert.Equal(t, 7, *completed.Player2SkillLevel)
	assert.Equal(t, 2, *completed.Player1RacksNeeded)
	assert.Equal(t, 5, *completed.Player2RacksNeeded)
	assert.Equal(t, 10.0, *completed.Player1Points)
	assert.Equal(t, 2.0, *completed.Player2Points)

	// Member counters updated exactly once each.
	var alice, bob models.Member
	require.NoError(t, f.db.First(&alice, 1).Error)
	require.NoError(t, f.db.First(&bob, 2).Error)
	assert.Equal(t, 1, alice.Wins)
	assert.Equal(t, 0, alice.Losses)
	assert.Equal(t, 1, alice.MatchesPlayed)
	assert.Equal(t, 0, bob.Wins)
	assert.Equal(t, 1, bob.Losses)
	assert.Equal(t, 1, bob.MatchesPlayed)

	// Season points booked into the standings ledger.
	standings, err := f.seasonService.GetStandings(f.season.ID)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, uint(1), standings[0].MemberID)
	assert.Equal(t, 10.0, standings[0].Points)
	assert.Equal(t, uint(2), standings[1].MemberID)
	assert.Equal(t, 2.0, standings[1].Points)
}

func TestCompleteMatchSnapshotSurvivesSkillChange(t *testing.T) {
	f := setupLeague(t)
	f.addMember(t, 1, "alice", 4)
	f.addMember(t, 2, "bob", 7)
	match := f.plannedMatch(t, 1, 2)

	_, err := f.matchService.CompleteMatch(match.ID, 1, models.CompleteMatchRequest{
		Player1Score: 2,
		Player2Score: 1,
	})
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&models.Member{}).Where("id = ?", 1).Update("skill_level", 6).Error)

	var stored models.Match
	require.NoError(t, f.db.First(&stored, match.ID).Error)
	assert.Equal(t, 4, *stored.Player1SkillLevel, "snapshot must not follow live skill level")
}

func TestCompleteMatchRejectedSecondTime(t *testing.T) {
	f := setupLeague(t)
	f.addMember(t, 1, "alice", 5)
	f.addMember(t, 2, "bob", 5)
	match := f.plannedMatch(t, 1, 2)

	_, err := f.matchService.CompleteMatch(match.ID, 1, models.CompleteMatchRequest{
		Player1Score: 4,
		Player2Score: 2,
	})
	require.NoError(t, err)

	_, err = f.matchService.CompleteMatch(match.ID, 2, models.CompleteMatchRequest{
		Player1Score: 1,
		Player2Score: 4,
	})
	assert.ErrorIs(t, err, ErrInvalidStateTransition)

	// Counters were not double-booked.
	var alice models.Member
	require.NoError(t, f.db.First(&alice, 1).Error)
	assert.Equal(t, 1, alice.MatchesPlayed)
}

func TestCompleteMatchErrors(t *testing.T) {
	f := setupLeague(t)
	f.addMember(t, 1, "alice", 5)
	f.addMember(t, 2, "bob", 5)
	f.addMember(t, 3, "carol", 4)
	match := f.plannedMatch(t, 1, 2)

	_, err := f.matchService.CompleteMatch(9999, 1, models.CompleteMatchRequest{})
	assert.ErrorIs(t, err, ErrMatchNotFound)

	_, err = f.matchService.CompleteMatch(match.ID, 3, models.CompleteMatchRequest{
		Player1Score: 4,
		Player2Score: 2,
	})
	assert.ErrorIs(t, err, ErrNotAParticipant)

	// Corrupted skill level outside [2,7] aborts before any write.
	require.NoError(t, f.db.Model(&models.Member{}).Where("id = ?", 2).Update("skill_level", 9).Error)
	_, err = f.matchService.CompleteMatch(match.ID, 1, models.CompleteMatchRequest{
		Player1Score: 4,
		Player2Score: 2,
	})
	assert.ErrorIs(t, err, utils.ErrInvalidSkillLevel)

	var stored models.Match
	require.NoError(t, f.db.First(&stored, match.ID).Error)
	assert.Equal(t, models.MatchStatusPlanned, stored.Status)
}

func TestForfeitMatch(t *testing.T) {
	f := setupLeague(t)
	f.addMember(t, 1, "alice", 4)
	f.addMember(t, 2, "bob", 7)
	match := f.plannedMatch(t, 1, 2)

	// Alice forfeits: sentinel -1 and 0 points for her, full win for bob.
	completed, err := f.matchService.ForfeitMatch(match.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, models.MatchStatusCompleted, completed.Status)
	assert.Equal(t, uint(2), *completed.WinnerID)
	assert.Equal(t, -1, *completed.Player1Score)
	assert.Equal(t, 5, *completed.Player2Score) // bob's own rack target
	assert.Equal(t, 0.0, *completed.Player1Points)
	assert.Equal(t, 10.0, *completed.Player2Points)

	var alice, bob models.Member
	require.NoError(t, f.db.First(&alice, 1).Error)
	require.NoError(t, f.db.First(&bob, 2).Error)
	assert.Equal(t, 1, alice.Losses)
	assert.Equal(t, 1, bob.Wins)
	assert.Equal(t, 1, alice.MatchesPlayed)
	assert.Equal(t, 1, bob.MatchesPlayed)

	// A completed match cannot be forfeited again.
	_, err = f.matchService.ForfeitMatch(match.ID, 2)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestForfeitMatchByNonParticipant(t *testing.T) {
	f := setupLeague(t)
	f.addMember(t, 1, "alice", 4)
	f.addMember(t, 2, "bob", 7)
	f.addMember(t, 3, "carol", 4)
	match := f.plannedMatch(t, 1, 2)

	_, err := f.matchService.ForfeitMatch(match.ID, 3)
	assert.ErrorIs(t, err, ErrNotAParticipant)
}

func TestAcceptByeMatch(t *testing.T) {
	f := setupLeague(t)
	f.addMember(t, 1, "alice", 4)

	match, err := f.matchService.CreateByeMatch(f.season.ID, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusBye, match.Status)

	completed, err := f.matchService.AcceptByeMatch(match.ID)
	require.NoError(t, err)

	assert.Equal(t, models.MatchStatusCompleted, completed.Status)
	assert.Equal(t, uint(1), *completed.WinnerID)
	assert.Equal(t, 0, *completed.Player1Score)
	assert.Equal(t, 0, *completed.Player2Score)
	assert.Equal(t, 0, *completed.Player1RacksNeeded)
	assert.Equal(t, 0, *completed.Player2RacksNeeded)

	// A bye is not a win/loss event.
	var alice models.Member
	require.NoError(t, f.db.First(&alice, 1).Error)
	assert.Equal(t, 0, alice.Wins)
	assert.Equal(t, 0, alice.Losses)
	assert.Equal(t, 0, alice.MatchesPlayed)

	// But the season points are booked.
	standings, err := f.seasonService.GetStandings(f.season.ID)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, 10.0, standings[0].Points)

	_, err = f.matchService.AcceptByeMatch(match.ID)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestAcceptByeMatchOnPlannedMatch(t *testing.T) {
	f := setupLeague(t)
	f.addMember(t, 1, "alice", 4)
	f.addMember(t, 2, "bob", 7)
	match := f.plannedMatch(t, 1, 2)

	_, err := f.matchService.AcceptByeMatch(match.ID)
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestRankingChangedNotifications(t *testing.T) {
	f := setupLeague(t)
	f.addMember(t, 1, "alice", 5)
	f.addMember(t, 2, "bob", 5)
	match := f.plannedMatch(t, 1, 2)

	// Both start at 0 points: alice ranks 1 on the id tie-break. Bob winning
	// flips the order, so both members get a ranking-changed notification.
	_, err := f.matchService.CompleteMatch(match.ID, 2, models.CompleteMatchRequest{
		Player1Score: 1,
		Player2Score: 4,
	})
	require.NoError(t, err)

	var notifications []models.Notification
	require.NoError(t, f.db.Where("type = ?", models.NotificationRankingChanged).
		Order("member_id ASC").Find(&notifications).Error)
	require.Len(t, notifications, 2)
	assert.Equal(t, uint(1), notifications[0].MemberID)
	assert.Equal(t, uint(2), notifications[1].MemberID)
}

func TestCreateMatchValidation(t *testing.T) {
	f := setupLeague(t)
	f.addMember(t, 1, "alice", 5)

	// Unknown opponent.
	_, err := f.matchService.CreateMatch(models.CreateMatchRequest{
		SeasonID:  f.season.ID,
		Week:      1,
		Player1ID: 1,
		Player2ID: 42,
	})
	assert.ErrorIs(t, err, ErrMemberNotFound)

	// Member off the roster.
	member := models.Member{ID: 2, Username: "mallory", SkillLevel: 4}
	require.NoError(t, f.db.Create(&member).Error)
	_, err = f.matchService.CreateMatch(models.CreateMatchRequest{
		SeasonID:  f.season.ID,
		Week:      1,
		Player1ID: 1,
		Player2ID: 2,
	})
	assert.ErrorIs(t, err, ErrNotOnRoster)

	// Self-pairing must go through CreateByeMatch.
	_, err = f.matchService.CreateMatch(models.CreateMatchRequest{
		SeasonID:  f.season.ID,
		Week:      1,
		Player1ID: 1,
		Player2ID: 1,
	})
	assert.Error(t, err)
}

func TestGetRackTargets(t *testing.T) {
	f := setupLeague(t)
	f.addMember(t, 1, "alice", 4)
	f.addMember(t, 2, "bob", 7)
	match := f.plannedMatch(t, 1, 2)

	targets, err := f.matchService.GetRackTargets(match.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.RackTargets{Player1: 2, Player2: 5}, targets)

	_, err = f.matchService.GetRackTargets(9999)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}
