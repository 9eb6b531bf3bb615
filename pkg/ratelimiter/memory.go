package ratelimiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitor pairs a token bucket with its last-seen time for cleanup.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Memory is an in-process rate limiter keeping one token bucket per key.
// Stale keys are evicted lazily during Allow calls.
type Memory struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	rps         rate.Limit
	burst       int
	ttl         time.Duration
	lastCleanup time.Time
}

// NewMemory creates an in-memory limiter allowing rps requests per second
// with the given burst per key. Keys idle for over an hour are evicted.
func NewMemory(rps float64, burst int) *Memory {
	return &Memory{
		visitors:    make(map[string]*visitor),
		rps:         rate.Limit(rps),
		burst:       burst,
		ttl:         time.Hour,
		lastCleanup: time.Now(),
	}
}

// Allow implements RateLimiter.
func (m *Memory) Allow(_ context.Context, key string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if now.Sub(m.lastCleanup) > m.ttl {
		for k, v := range m.visitors {
			if now.Sub(v.lastSeen) > m.ttl {
				delete(m.visitors, k)
			}
		}
		m.lastCleanup = now
	}

	v, ok := m.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.rps, m.burst)}
		m.visitors[key] = v
	}
	v.lastSeen = now

	res := Result{Limit: m.burst}
	reservation := v.limiter.Reserve()
	if delay := reservation.Delay(); delay > 0 {
		reservation.Cancel()
		res.RetryAfter = delay
		return res, nil
	}

	res.Allowed = true
	res.Remaining = int(v.limiter.Tokens())
	return res, nil
}
