package middleware

import (
	"time"

	"github.com/relaykit/relay/core/httperr"
	"github.com/relaykit/relay/core/router"
)

// TimeoutConfig configures the timeout middleware.
type TimeoutConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *router.Context) bool
	// Timeout is the maximum time the rest of the chain may take (default: 30s)
	Timeout time.Duration
	// OnTimeout is called when a request exceeds the deadline
	OnTimeout func(ctx *router.Context, elapsed time.Duration)
}

// Timeout creates a timeout middleware with a 30-second deadline.
func Timeout() router.Middleware {
	return TimeoutWithConfig(TimeoutConfig{})
}

// TimeoutWithConfig creates a timeout middleware with custom configuration.
// It races the rest of the chain against a timer; on expiry a 408 error is
// returned for the error boundary to render. The downstream chain keeps
// running to completion, but its response writes become no-ops once the
// timeout response is finalized, acting as an implicit cancellation signal.
func TimeoutWithConfig(cfg TimeoutConfig) router.Middleware {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return func(ctx *router.Context, next router.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next()
		}

		done := make(chan error, 1)
		start := time.Now()
		go func() {
			defer func() {
				// A late panic has no chain to unwind through; surface it
				// as an error on the channel instead of crashing.
				if p := recover(); p != nil {
					done <- httperr.Recovered(p)
				}
			}()
			done <- next()
		}()

		timer := time.NewTimer(cfg.Timeout)
		defer timer.Stop()

		select {
		case err := <-done:
			return err
		case <-timer.C:
			if cfg.OnTimeout != nil {
				cfg.OnTimeout(ctx, time.Since(start))
			}
			return httperr.Timeout(cfg.Timeout)
		}
	}
}
