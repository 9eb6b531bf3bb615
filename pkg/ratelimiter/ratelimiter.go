package ratelimiter

import (
	"context"
	"time"
)

// Result reports the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Limit      int           // configured limit for the window
	Remaining  int           // requests left in the current window
	RetryAfter time.Duration // how long to wait before retrying, 0 if allowed
}

// RateLimiter decides whether a request identified by key may proceed.
// Implementations own and synchronize their cross-request state; the
// dispatch core only calls Allow once per request.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}
