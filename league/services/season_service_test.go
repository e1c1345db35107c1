package services

import (
	"testing"

	"cueu-api/league/cache"
	"cueu-api/league/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandingsOrderAndRanks(t *testing.T) {
	db := setupTestDB(t)
	seasonService := NewSeasonService(db, cache.NewStandingsCache(nil))

	season := models.Season{Name: "Spring League", Active: true}
	require.NoError(t, db.Create(&season).Error)

	for i, points := range []float64{4.5, 20, 12} {
		memberID := uint(i + 1)
		member := models.Member{ID: memberID, Username: "member", SkillLevel: 4}
		require.NoError(t, db.Create(&member).Error)
		require.NoError(t, seasonService.AddToRoster(season.ID, memberID))
		require.NoError(t, db.Model(&models.Standing{}).
			Where("season_id = ? AND member_id = ?", season.ID, memberID).
			Update("points", points).Error)
	}

	standings, err := seasonService.GetStandings(season.ID)
	require.NoError(t, err)
	require.Len(t, standings, 3)

	assert.Equal(t, []uint{2, 3, 1}, []uint{standings[0].MemberID, standings[1].MemberID, standings[2].MemberID})
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 3, standings[2].Rank)

	rank, err := seasonService.MemberRank(season.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, rank)

	_, err = seasonService.MemberRank(season.ID, 42)
	assert.ErrorIs(t, err, ErrNotOnRoster)
}

func TestStandingsTieBreakByMemberID(t *testing.T) {
	db := setupTestDB(t)
	seasonService := NewSeasonService(db, cache.NewStandingsCache(nil))

	season := models.Season{Name: "Summer League", Active: true}
	require.NoError(t, db.Create(&season).Error)

	for _, memberID := range []uint{7, 3} {
		member := models.Member{ID: memberID, Username: "member", SkillLevel: 4}
		require.NoError(t, db.Create(&member).Error)
		require.NoError(t, seasonService.AddToRoster(season.ID, memberID))
	}

	// Equal points: lower member id ranks first, deterministically.
	standings, err := seasonService.GetStandings(season.ID)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, uint(3), standings[0].MemberID)
	assert.Equal(t, uint(7), standings[1].MemberID)
}

func TestRosterManagement(t *testing.T) {
	db := setupTestDB(t)
	seasonService := NewSeasonService(db, cache.NewStandingsCache(nil))

	season := models.Season{Name: "Winter League", Active: true}
	require.NoError(t, db.Create(&season).Error)
	member := models.Member{ID: 1, Username: "alice", SkillLevel: 4}
	require.NoError(t, db.Create(&member).Error)

	require.NoError(t, seasonService.AddToRoster(season.ID, 1))

	onRoster, err := seasonService.IsOnRoster(season.ID, 1)
	require.NoError(t, err)
	assert.True(t, onRoster)

	// Adding twice is a no-op, not an error.
	require.NoError(t, seasonService.AddToRoster(season.ID, 1))
	roster, err := seasonService.GetRoster(season.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 1)

	require.NoError(t, seasonService.RemoveFromRoster(season.ID, 1))
	onRoster, err = seasonService.IsOnRoster(season.ID, 1)
	require.NoError(t, err)
	assert.False(t, onRoster)

	assert.ErrorIs(t, seasonService.RemoveFromRoster(season.ID, 1), ErrNotOnRoster)

	assert.ErrorIs(t, seasonService.AddToRoster(9999, 1), ErrSeasonNotFound)
	assert.ErrorIs(t, seasonService.AddToRoster(season.ID, 42), ErrMemberNotFound)
}
