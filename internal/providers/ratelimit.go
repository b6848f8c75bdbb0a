package providers

import (
	"context"
	"sync"
	"time"
)

// RateLimiter spaces completion calls to a requests-per-minute budget. The
// bucket starts full, so a fresh process can burst up to the full minute.
type RateLimiter struct {
	mu       sync.Mutex
	rpm      int
	perSec   float64
	tokens   float64
	refilled time.Time

	consumed int64
	waited   time.Duration
	last429  time.Time
}

// RateLimiterStatus is a snapshot of a limiter.
type RateLimiterStatus struct {
	Available int           `json:"available"`
	Limit     int           `json:"limit"`
	NextIn    time.Duration `json:"next_in"`
	Consumed  int64         `json:"consumed"`
	Waited    time.Duration `json:"waited"`
	Last429   time.Time     `json:"last_429,omitempty"`
}

// NewRateLimiter creates a limiter for rpm requests per minute. Non-positive
// values fall back to one request per second.
func NewRateLimiter(rpm int) *RateLimiter {
	if rpm <= 0 {
		rpm = 60
	}
	return &RateLimiter{
		rpm:      rpm,
		perSec:   float64(rpm) / 60,
		tokens:   float64(rpm),
		refilled: time.Now(),
	}
}

// Wait blocks until a request may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		if r.take() {
			r.mu.Unlock()
			return nil
		}
		delay := r.nextIn()
		r.mu.Unlock()

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		r.mu.Lock()
		r.waited += delay
		r.mu.Unlock()
	}
}

// TryConsume takes a request slot if one is free.
func (r *RateLimiter) TryConsume() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.take()
}

// Record429 notes a rate-limit reply. A positive retryAfter empties the
// bucket so the next call waits for a refill.
func (r *RateLimiter) Record429(retryAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last429 = time.Now()
	if retryAfter > 0 {
		r.tokens = 0
	}
}

// Status returns the current limiter state.
func (r *RateLimiter) Status() RateLimiterStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refill()
	return RateLimiterStatus{
		Available: int(r.tokens),
		Limit:     r.rpm,
		NextIn:    r.nextIn(),
		Consumed:  r.consumed,
		Waited:    r.waited,
		Last429:   r.last429,
	}
}

// take and nextIn must be called with the lock held.
func (r *RateLimiter) take() bool {
	r.refill()
	if r.tokens < 1 {
		return false
	}
	r.tokens--
	r.consumed++
	return true
}

func (r *RateLimiter) nextIn() time.Duration {
	if r.tokens >= 1 {
		return 0
	}
	return time.Duration((1 - r.tokens) / r.perSec * float64(time.Second))
}

func (r *RateLimiter) refill() {
	now := time.Now()
	r.tokens += now.Sub(r.refilled).Seconds() * r.perSec
	r.refilled = now
	if full := float64(r.rpm); r.tokens > full {
		r.tokens = full
	}
}
