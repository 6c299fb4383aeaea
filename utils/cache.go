// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"shuttle/config"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// CheckInCacheClient is the dedicated client for check-in tokens.
	CheckInCacheClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitCheckInCache initializes the Redis client storing check-in tokens.
func InitCheckInCache() {
	CheckInCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCheckInDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CheckInCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (CheckIn): %v", err)
	}
}

// GetCheckInCacheClient returns the Redis client for check-in tokens.
func GetCheckInCacheClient() *redis.Client {
	if CheckInCacheClient == nil {
		InitCheckInCache()
	}
	return CheckInCacheClient
}
