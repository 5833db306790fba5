package Config

import (
	"sync"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// GetRedisClient returns the shared client, or nil when no Redis address
// is configured. Callers are expected to fail open without it.
func GetRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := Load()
		if cfg.RedisAddr == "" {
			return
		}
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	})
	return redisClient
}
