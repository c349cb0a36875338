package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// PlatformRateLimiter enforces a minimum delay between requests to the same
// career-site platform. Quarterly scrapes hammer a handful of tenant APIs
// with hundreds of detail fetches each; the delay is the politeness policy
// between them.
type PlatformRateLimiter struct {
	mu       sync.Mutex
	lastCall map[string]time.Time // key: platform name
	minDelay time.Duration
}

// NewPlatformRateLimiter creates a rate limiter that enforces minDelay
// between consecutive requests to the same platform.
func NewPlatformRateLimiter(minDelay time.Duration) *PlatformRateLimiter {
	return &PlatformRateLimiter{
		lastCall: make(map[string]time.Time),
		minDelay: minDelay,
	}
}

// Wait blocks until enough time has passed since the last request to the
// given platform. Returns an error if the context is cancelled while waiting.
func (r *PlatformRateLimiter) Wait(ctx context.Context, platform string) error {
	r.mu.Lock()
	last, ok := r.lastCall[platform]
	now := time.Now()

	if !ok {
		// First request for this platform, no wait needed.
		r.lastCall[platform] = now
		r.mu.Unlock()
		return nil
	}

	elapsed := now.Sub(last)
	if elapsed >= r.minDelay {
		r.lastCall[platform] = now
		r.mu.Unlock()
		return nil
	}

	remaining := r.minDelay - elapsed
	r.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", platform, ctx.Err())
	case <-time.After(remaining):
	}

	r.mu.Lock()
	r.lastCall[platform] = time.Now()
	r.mu.Unlock()

	return nil
}
