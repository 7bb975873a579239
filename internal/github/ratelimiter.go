package github

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

// * RateLimiter tracks GitHub's rate-limit headers and pauses outgoing
// * requests once the quota is spent. A 429 is retried once after Retry-After.
type RateLimiter struct {
	mu          sync.Mutex
	remaining   int
	reset       time.Time
	lowWarn     int
	retryAfter  time.Duration
	retryStatus int
	maxWait     time.Duration
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		remaining:   5000,
		reset:       time.Now(),
		lowWarn:     100,
		retryStatus: http.StatusTooManyRequests,
		maxWait:     time.Minute,
	}
}

// * waitDuration returns how long the next request has to wait, capped at maxWait
func (r *RateLimiter) waitDuration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if r.remaining > 0 || !now.Before(r.reset) {
		return 0
	}

	return min(r.reset.Sub(now), r.maxWait)
}

func (r *RateLimiter) updateFromHeaders(headers http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := headers.Get("X-RateLimit-Remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
		}
	}

	if reset := headers.Get("X-RateLimit-Reset"); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.reset = time.Unix(val, 0)
		}
	}

	r.retryAfter = 0
	if retry := headers.Get("Retry-After"); retry != "" {
		if seconds, err := strconv.Atoi(retry); err == nil {
			r.retryAfter = time.Duration(seconds) * time.Second
		}
	}

	if r.remaining < r.lowWarn {
		logger.Warn("[RateLimiter] Low rate limit: %d remaining. Resets at %s", r.remaining, r.reset.Format(time.RFC1123))
	}
}

func (r *RateLimiter) Middleware(next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if wait := r.waitDuration(); wait > 0 {
			logger.Warn("[RateLimiter] Rate limit exceeded. Waiting %v before %s", wait, req.URL.Path)
			if err := sleepContext(req, wait); err != nil {
				return nil, err
			}
		}

		resp, err := next.RoundTrip(req)
		if err != nil {
			logger.Error("Network error in RoundTrip: %v", err)
			return nil, err
		}

		r.updateFromHeaders(resp.Header)

		// * Retry on 429
		if resp.StatusCode == r.retryStatus {
			r.mu.Lock()
			wait := min(r.retryAfter, r.maxWait)
			r.mu.Unlock()

			logger.Warn("[RateLimiter] Received 429. Retrying after %v...", wait)
			resp.Body.Close()
			if err := sleepContext(req, wait); err != nil {
				return nil, err
			}

			resp, err = next.RoundTrip(req)
			if err != nil {
				return nil, err
			}
			r.updateFromHeaders(resp.Header)
		}

		return resp, nil
	})
}

func sleepContext(req *http.Request, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-req.Context().Done():
		return req.Context().Err()
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
