// Package ratelimiter provides pluggable request rate limiting backends for
// the RateLimit middleware: an in-memory token bucket for single-process
// deployments and a Redis fixed-window counter for limits shared across
// instances.
package ratelimiter
