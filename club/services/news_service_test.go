package services

import (
	"testing"
	"time"

	"cueu-api/club/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupClubDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.News{}, &models.Event{}))

	return db
}

func TestNewsSlugGeneration(t *testing.T) {
	db := setupClubDB(t)
	newsService := NewNewsService(db)

	first, err := newsService.Create(1, models.CreateNewsRequest{
		Title:     "Club Championship Results!",
		Body:      "body",
		Published: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "club-championship-results", first.Slug)
	require.NotNil(t, first.PublishedAt)

	// Same title gets a suffixed slug
	second, err := newsService.Create(1, models.CreateNewsRequest{
		Title:     "Club Championship Results!",
		Body:      "body",
		Published: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "club-championship-results-2", second.Slug)
}

func TestNewsPublicationFlow(t *testing.T) {
	db := setupClubDB(t)
	newsService := NewNewsService(db)

	draft, err := newsService.Create(1, models.CreateNewsRequest{
		Title: "Summer Session Draft",
		Body:  "notes",
	})
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)

	// Drafts are invisible on the public slug lookup
	_, err = newsService.GetBySlug(draft.Slug)
	assert.ErrorIs(t, err, ErrNewsNotFound)

	published := true
	updated, err := newsService.Update(draft.ID, models.UpdateNewsRequest{Published: &published})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	firstPublication := *updated.PublishedAt

	found, err := newsService.GetBySlug(draft.Slug)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, found.ID)

	// Unpublish then republish keeps the original publication date
	unpublished := false
	_, err = newsService.Update(draft.ID, models.UpdateNewsRequest{Published: &unpublished})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	republished, err := newsService.Update(draft.ID, models.UpdateNewsRequest{Published: &published})
	require.NoError(t, err)
	require.NotNil(t, republished.PublishedAt)
	assert.Equal(t, firstPublication.Unix(), republished.PublishedAt.Unix())
}

func TestEventUpcomingOrder(t *testing.T) {
	db := setupClubDB(t)
	eventService := NewEventService(db)

	later, err := eventService.Create(models.CreateEventRequest{
		Title:    "League finals",
		StartsAt: time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	sooner, err := eventService.Create(models.CreateEventRequest{
		Title:    "Weekly practice",
		StartsAt: time.Now().AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	// Past events stay out of the upcoming list
	_, err = eventService.Create(models.CreateEventRequest{
		Title:    "Last month's social",
		StartsAt: time.Now().AddDate(0, -1, 0),
	})
	require.NoError(t, err)

	events, err := eventService.GetUpcoming(10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, sooner.ID, events[0].ID)
	assert.Equal(t, later.ID, events[1].ID)
}
