package intake

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/complaintdesk/classifier/internal/logger"
)

const defaultRPS = 100

// RateLimiter bounds the submission throughput.
type RateLimiter struct {
	limiter *rate.Limiter
	logger  logger.Logger
}

// NewRateLimiter creates a new rate limiter.
// rps: requests per second
// burst: maximum burst size
func NewRateLimiter(rps, burst int, log logger.Logger) *RateLimiter {
	if rps <= 0 {
		rps = defaultRPS
	}
	if burst <= 0 {
		burst = rps
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  log,
	}
}

// Wait waits until rate limit allows the operation
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		r.logger.Warn("rate limiter wait failed", logger.Error(err))
		return err
	}
	return nil
}

// Allow checks if an operation is allowed without waiting
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}

// SetLimit updates the rate limit
func (r *RateLimiter) SetLimit(rps int) {
	r.limiter.SetLimit(rate.Limit(rps))
	r.logger.Info("rate limit updated", logger.Int("new_rps", rps))
}
