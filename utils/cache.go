// File: utils/cache.go
package utils

import (
	"autosave/config"
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	// DraftCacheClient holds wizard draft sessions and submit locks.
	DraftCacheClient *redis.Client
)

// InitDraftCache initializes the Redis client used for draft sessions.
func InitDraftCache() {
	DraftCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDraftDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := DraftCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Drafts): %v", err)
	}
}

// GetDraftCacheClient returns the draft session client.
func GetDraftCacheClient() *redis.Client {
	if DraftCacheClient == nil {
		InitDraftCache()
	}
	return DraftCacheClient
}
