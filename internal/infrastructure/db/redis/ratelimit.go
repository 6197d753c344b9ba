package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter backed by Redis.
// Key format: ratelimit:<scope>:<client>
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRateLimiter creates a RateLimiter allowing limit calls per window.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: int64(limit), window: window}
}

// Allow reports whether one more call from clientKey fits in the current
// window. The first call of a window creates the counter and arms its expiry.
func (l *RateLimiter) Allow(ctx context.Context, scope, clientKey string) (bool, error) {
	key := l.key(scope, clientKey)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	return n <= l.limit, nil
}

func (l *RateLimiter) key(scope, clientKey string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, clientKey)
}
