// Package limits caps how fast a live connection may send events and how
// many connections one client address may hold open.
package limits

import (
	"errors"
	"sync"
	"time"
)

// Common errors.
var (
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrTooManyConnections = errors.New("too many connections")
)

// TokenBucket is a single token bucket. It starts full.
type TokenBucket struct {
	rate  float64 // tokens per second
	burst int

	tokens   float64
	lastFill time.Time
	now      func() time.Time
	mu       sync.Mutex
}

// NewTokenBucket creates a bucket refilled at rate tokens per second and
// holding at most burst tokens.
func NewTokenBucket(rate float64, burst int) *TokenBucket {
	return newTokenBucket(rate, burst, time.Now)
}

func newTokenBucket(rate float64, burst int, now func() time.Time) *TokenBucket {
	if burst < 1 {
		burst = 1
	}
	return &TokenBucket{
		rate:     rate,
		burst:    burst,
		tokens:   float64(burst),
		lastFill: now(),
		now:      now,
	}
}

// Allow takes one token if available.
func (tb *TokenBucket) Allow() bool {
	return tb.AllowN(1)
}

// AllowN takes n tokens if that many are available, and none otherwise.
func (tb *TokenBucket) AllowN(n int) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens < float64(n) {
		return false
	}
	tb.tokens -= float64(n)
	return true
}

// Available returns the whole tokens currently in the bucket.
func (tb *TokenBucket) Available() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	return int(tb.tokens)
}

func (tb *TokenBucket) refill() {
	now := tb.now()
	elapsed := now.Sub(tb.lastFill).Seconds()
	tb.lastFill = now

	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.burst) {
		tb.tokens = float64(tb.burst)
	}
}
