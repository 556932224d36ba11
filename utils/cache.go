// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"roomsched/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the Redis client backing the decision cache.
var CacheClient *redis.Client

// InitCache connects the decision cache client using the Redis settings from AppConfig.
func InitCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return err
	}
	CacheClient = client
	return nil
}

// GetCacheClient returns the decision cache client, or nil when it was never connected.
func GetCacheClient() *redis.Client {
	return CacheClient
}
