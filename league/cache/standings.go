package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cueu-api/league/models"

	"github.com/redis/go-redis/v9"
)

const standingsTTL = 10 * time.Minute

// StandingsCache keeps serialized season standings in Redis. Every method is
// safe to call with a nil receiver or a nil client: cache failures degrade to
// a miss and are logged, never returned.
type StandingsCache struct {
	rdb *redis.Client
}

func NewStandingsCache(rdb *redis.Client) *StandingsCache {
	return &StandingsCache{rdb: rdb}
}

func standingsKey(seasonID uint) string {
	return fmt.Sprintf("cueu:standings:%d", seasonID)
}

// Get returns the cached standings for a season and whether the lookup hit.
func (c *StandingsCache) Get(ctx context.Context, seasonID uint) ([]models.StandingEntry, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	payload, err := c.rdb.Get(ctx, standingsKey(seasonID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Standings cache read failed for season %d: %v", seasonID, err)
		}
		return nil, false
	}

	var entries []models.StandingEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		log.Printf("Standings cache payload corrupt for season %d: %v", seasonID, err)
		return nil, false
	}

	return entries, true
}

// Set stores the standings for a season with a TTL.
func (c *StandingsCache) Set(ctx context.Context, seasonID uint, entries []models.StandingEntry) {
	if c == nil || c.rdb == nil {
		return
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		log.Printf("Failed to serialize standings for season %d: %v", seasonID, err)
		return
	}

	if err := c.rdb.Set(ctx, standingsKey(seasonID), payload, standingsTTL).Err(); err != nil {
		log.Printf("Standings cache write failed for season %d: %v", seasonID, err)
	}
}

// Invalidate drops the cached standings for a season.
func (c *StandingsCache) Invalidate(ctx context.Context, seasonID uint) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Del(ctx, standingsKey(seasonID)).Err(); err != nil {
		log.Printf("Standings cache invalidation failed for season %d: %v", seasonID, err)
	}
}
