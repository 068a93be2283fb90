package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"leadchat_backend/platform/logger"
)

func testLimiter(t *testing.T, window time.Duration, max int) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisLimiterWithClient(rdb, window, max, logger.New("development")), mr
}

func TestAllowWithinLimit(t *testing.T) {
	limiter, _ := testLimiter(t, time.Minute, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !allowed {
			t.Fatalf("request %d should be within the limit", i+1)
		}
	}

	allowed, err := limiter.Allow(ctx, "1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("request over the limit must be denied")
	}
}

func TestAllowIsPerKey(t *testing.T) {
	limiter, _ := testLimiter(t, time.Minute, 1)
	ctx := context.Background()

	if allowed, _ := limiter.Allow(ctx, "1.2.3.4"); !allowed {
		t.Fatal("first request for first key should pass")
	}
	if allowed, _ := limiter.Allow(ctx, "5.6.7.8"); !allowed {
		t.Fatal("first request for second key should pass")
	}
	if allowed, _ := limiter.Allow(ctx, "1.2.3.4"); allowed {
		t.Fatal("second request for first key should be denied")
	}
}

func TestWindowKeyCarriesExpiry(t *testing.T) {
	limiter, mr := testLimiter(t, time.Minute, 5)

	if _, err := limiter.Allow(context.Background(), "1.2.3.4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	keys := mr.Keys()
	if len(keys) != 1 {
		t.Fatalf("expected one counter key, got %v", keys)
	}
	if mr.TTL(keys[0]) <= 0 {
		t.Fatalf("counter key must expire, ttl=%v", mr.TTL(keys[0]))
	}
}
