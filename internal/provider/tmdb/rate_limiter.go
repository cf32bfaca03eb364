package tmdb

import (
	"context"
	"sync"
	"time"
)

// rateLimiter implements a simple sliding window rate limiter over outbound
// API calls.
type rateLimiter struct {
	mu          sync.Mutex
	requests    []time.Time
	maxRequests int
	window      time.Duration
}

func newRateLimiter(maxRequests int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		maxRequests: maxRequests,
		window:      window,
		requests:    make([]time.Time, 0, maxRequests),
	}
}

// wait blocks until a request fits inside the window or the context expires.
func (r *rateLimiter) wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		now := time.Now()
		r.requests = r.prune(now)

		if len(r.requests) < r.maxRequests {
			r.requests = append(r.requests, now)
			r.mu.Unlock()
			return nil
		}

		// Wait for the oldest request to fall out of the window, with a
		// small buffer so it has actually expired on re-check.
		waitTime := r.window - now.Sub(r.requests[0]) + 10*time.Millisecond
		r.mu.Unlock()

		timer := time.NewTimer(waitTime)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// prune drops requests outside the window. Callers must hold mu.
func (r *rateLimiter) prune(now time.Time) []time.Time {
	cutoff := now.Add(-r.window)
	valid := make([]time.Time, 0, r.maxRequests)
	for _, req := range r.requests {
		if req.After(cutoff) {
			valid = append(valid, req)
		}
	}
	return valid
}
