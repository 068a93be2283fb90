// Package ratelimit provides a Redis-backed fixed-window request limiter for
// the public routes. When Redis is unavailable the limiter fails open; rate
// limiting is protection, not correctness.
package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"leadchat_backend/platform/config"
	"leadchat_backend/platform/logger"
)

// RedisLimiter counts requests per key in fixed windows.
type RedisLimiter struct {
	rdb    *redis.Client
	window time.Duration
	max    int
	log    *logger.Logger
}

// NewRedisLimiter creates a limiter from the configured Redis URL.
func NewRedisLimiter(cfg config.RateLimitConfig, log *logger.Logger) (*RedisLimiter, error) {
	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	return &RedisLimiter{
		rdb:    redis.NewClient(opt),
		window: cfg.GetRateLimitWindow(),
		max:    cfg.GetRateLimitMax(),
		log:    log,
	}, nil
}

// NewRedisLimiterWithClient creates a limiter over an existing client.
func NewRedisLimiterWithClient(rdb *redis.Client, window time.Duration, max int, log *logger.Logger) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, window: window, max: max, log: log}
}

// Allow increments the key's counter for the current window and reports
// whether the request is within the limit.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := time.Now().Unix() / int64(l.window.Seconds())
	windowKey := fmt.Sprintf("ratelimit:%s:%d", key, bucket)

	count, err := l.rdb.Incr(ctx, windowKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		// First hit in this window owns the expiry.
		if err := l.rdb.Expire(ctx, windowKey, l.window).Err(); err != nil {
			return false, err
		}
	}

	return count <= int64(l.max), nil
}

// Middleware returns a gin middleware limiting by client IP.
func (l *RedisLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		allowed, err := l.Allow(c.Request.Context(), ip)
		if err != nil {
			// Fail open: a Redis outage must not take the chat down.
			l.log.Warn("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if !allowed {
			l.log.RateLimitExceeded(ip, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}

// Close releases the underlying Redis connection.
func (l *RedisLimiter) Close() error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Close()
}
