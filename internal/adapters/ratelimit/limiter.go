package ratelimit

import (
	"context"

	"golang.org/x/time/rate"

	"ideaforge/pkg/errors"
)

// Limiter throttles outbound calls to the completion and search APIs
type Limiter struct {
	limiter *rate.Limiter
	name    string
	rpm     int
}

// NewLimiter allows requestsPerMinute with a burst of a tenth of that (at least 1).
// A non-positive rate disables limiting.
func NewLimiter(name string, requestsPerMinute int) *Limiter {
	if requestsPerMinute <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1), name: name}
	}

	burst := requestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}

	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst),
		name:    name,
		rpm:     requestsPerMinute,
	}
}

// Wait blocks until a token is available or ctx is done
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return errors.Wrapf(errors.ErrRateLimitExceeded, "rate limiter %s: %v", l.name, err)
	}
	return nil
}

func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// PerMinute returns the configured rate, 0 when unlimited
func (l *Limiter) PerMinute() int {
	return l.rpm
}
