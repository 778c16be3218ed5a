package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Pacer decides how long the queue waits between two tasks.
type Pacer interface {
	// Wait blocks until the next task may start or ctx is done.
	Wait(ctx context.Context) error
}

// Throttled is implemented by pacers that can pause after the provider
// reports too many requests.
type Throttled interface {
	// RecordRateLimitError sets a back-off window of retryAfterSeconds.
	RecordRateLimitError(retryAfterSeconds int)
}

// DefaultBackoffSeconds is the pause applied when the provider gives no retry hint.
const DefaultBackoffSeconds = 60

// FixedDelay waits the same duration between every pair of tasks.
type FixedDelay struct {
	delay time.Duration
}

// NewFixedDelay creates a pacer that waits d between tasks.
// Negative durations are treated as zero.
func NewFixedDelay(d time.Duration) *FixedDelay {
	if d < 0 {
		d = 0
	}
	return &FixedDelay{delay: d}
}

// Delay returns the configured pause.
func (f *FixedDelay) Delay() time.Duration {
	return f.delay
}

// Wait sleeps for the configured delay.
func (f *FixedDelay) Wait(ctx context.Context) error {
	if f.delay == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(f.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RateLimitConfig holds rate limiting configuration for a search provider.
type RateLimitConfig struct {
	// RequestsPerMinute is the sustained request rate.
	RequestsPerMinute float64
	// BurstSize is the maximum number of requests allowed back to back.
	BurstSize int
}

// RateLimiter paces tasks with a token bucket.
// A 429 from the provider opens a back-off window that Wait honours
// before taking a token.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a token-bucket pacer. Non-positive values fall back
// to one request every two seconds with a burst of one.
//
// The bucket starts empty: the queue's first task takes no token, so the
// first Wait already lasts one interval.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 30
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute/60), cfg.BurstSize)
	limiter.AllowN(time.Now(), cfg.BurstSize)

	return &RateLimiter{limiter: limiter}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimitError.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if err := r.limiter.Wait(ctx); err != nil {
		if ctx.Err() == nil {
			// The token would only arrive after ctx's deadline.
			return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		return err
	}
	return nil
}

// RecordRateLimitError records a rate limit error and sets a backoff period.
func (r *RateLimiter) RecordRateLimitError(retryAfterSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfterSeconds <= 0 {
		retryAfterSeconds = DefaultBackoffSeconds
	}

	r.retryAt = time.Now().Add(time.Duration(retryAfterSeconds) * time.Second)
}
