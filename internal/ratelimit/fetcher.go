package ratelimit

import (
	"context"

	"github.com/alreinhart/TXSemiModel/internal/model"
)

// RateLimitedFetcher is a decorator that enforces platform-level rate
// limiting before delegating to the wrapped JobFetcher.
type RateLimitedFetcher struct {
	inner    model.JobFetcher
	limiter  *PlatformRateLimiter
	platform string
}

// NewRateLimitedFetcher wraps a JobFetcher with platform-level rate
// limiting. All fetchers targeting the same platform should share the same
// limiter instance.
func NewRateLimitedFetcher(inner model.JobFetcher, limiter *PlatformRateLimiter, platform string) *RateLimitedFetcher {
	return &RateLimitedFetcher{
		inner:    inner,
		limiter:  limiter,
		platform: platform,
	}
}

// FetchJobs waits for the rate limiter to allow a request, then delegates
// to the wrapped fetcher.
func (f *RateLimitedFetcher) FetchJobs(ctx context.Context) ([]model.Job, error) {
	if err := f.limiter.Wait(ctx, f.platform); err != nil {
		return nil, err
	}
	return f.inner.FetchJobs(ctx)
}
