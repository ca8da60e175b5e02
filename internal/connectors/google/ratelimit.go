package google

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DriveRequestsPerSecond is well below Drive's 10 requests/second/user quota.
const DriveRequestsPerSecond = 8.0

// DriveBurst is the token bucket size for Drive requests.
const DriveBurst = 10

// DefaultBackoff applies when a rate limit response has no Retry-After.
const DefaultBackoff = 60 * time.Second

// RateLimiter provides rate limiting for Google API requests.
// It uses a token bucket algorithm with a backoff window after 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a rate limiter allowing r requests per second.
func NewRateLimiter(r rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(r, burst)}
}

// NewDriveRateLimiter creates a rate limiter with Drive defaults.
func NewDriveRateLimiter() *RateLimiter {
	return NewRateLimiter(DriveRequestsPerSecond, DriveBurst)
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

	return r.limiter.Wait(ctx)
}

// RecordRateLimitError sets a backoff period. Non-positive values use
// DefaultBackoff.
func (r *RateLimiter) RecordRateLimitError(retryAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfter <= 0 {
		retryAfter = DefaultBackoff
	}
	r.retryAt = time.Now().Add(retryAfter)
}

// BackoffUntil returns the end of the current backoff window.
func (r *RateLimiter) BackoffUntil() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAt
}
