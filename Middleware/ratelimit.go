package Middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"ProSpine/Config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRateLimit  = 5
	defaultRateWindow = 15 * time.Minute
)

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// RateLimiter throttles an endpoint per client IP using Redis counters.
// It fails open: if Redis is missing or down, requests pass, because a
// broken limiter must not lock reception out of the system.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limit == 0 {
		cfg.Limit = defaultRateLimit
	}
	if cfg.Window == 0 {
		cfg.Window = defaultRateWindow
	}

	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", c.Request.URL.Path, c.ClientIP())

		allowed, err := checkRateLimit(key, cfg.Limit, cfg.Window)
		if err != nil {
			log.Printf("rate limit check failed: %v", err)
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": "too many requests, please try again later",
				"code":    "rate_limited",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func checkRateLimit(key string, limit int, window time.Duration) (bool, error) {
	rdb := Config.GetRedisClient()
	if rdb == nil {
		return true, nil
	}

	ctx := context.Background()

	pipe := rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	return incrCmd.Val() <= int64(limit), nil
}
