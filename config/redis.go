package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// ConnectRedis initialise le client Redis utilisé pour le cache des classements.
// Redis est optionnel : en cas d'échec on continue sans cache.
func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
		PoolSize: 50,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RDB.Ping(ctx).Result(); err != nil {
		log.Printf("Redis unavailable, standings cache disabled: %v", err)
		RDB = nil
		return
	}

	log.Println("Redis connection established")
}
