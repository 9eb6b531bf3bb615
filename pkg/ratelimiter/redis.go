package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a fixed-window rate limiter backed by a shared Redis counter,
// for limits enforced across multiple instances.
type Redis struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewRedis creates a Redis-backed limiter allowing limit requests per window
// per key.
func NewRedis(client *redis.Client, limit int, window time.Duration) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("ratelimiter: nil redis client")
	}
	if limit <= 0 || window <= 0 {
		return nil, fmt.Errorf("ratelimiter: limit and window must be positive")
	}
	return &Redis{
		client: client,
		prefix: "ratelimit:",
		limit:  limit,
		window: window,
	}, nil
}

// Allow implements RateLimiter using INCR with a window-scoped expiry.
func (r *Redis) Allow(ctx context.Context, key string) (Result, error) {
	redisKey := r.prefix + key

	pipe := r.client.TxPipeline()
	count := pipe.Incr(ctx, redisKey)
	// Expiry is set only when the key is created, bounding the window.
	pipe.ExpireNX(ctx, redisKey, r.window)
	ttl := pipe.TTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("ratelimiter: redis check failed: %w", err)
	}

	res := Result{Limit: r.limit}
	n := int(count.Val())
	if n > r.limit {
		res.RetryAfter = ttl.Val()
		if res.RetryAfter <= 0 {
			res.RetryAfter = r.window
		}
		return res, nil
	}

	res.Allowed = true
	res.Remaining = r.limit - n
	return res, nil
}
