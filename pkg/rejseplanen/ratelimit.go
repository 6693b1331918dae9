package rejseplanen

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"
)

// RateLimiter spaces outbound requests to the Rejseplanen API.
// A nil *RateLimiter never blocks.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter returns a limiter allowing rps requests per second with the
// given burst. A non-positive rps disables limiting and returns nil.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Wait blocks until the limiter allows a request or the context is canceled.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl == nil {
		return nil
	}
	if err := rl.limiter.Wait(ctx); err != nil {
		slog.Debug("rate limiter wait error", "error", err)
		return err
	}
	return nil
}
