package hybrid

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles how fast documents are pushed at the structured
// extraction service, so a wide worker pool cannot flood it.
type Limiter struct {
	l *rate.Limiter
}

// NewLimiter creates a Limiter allowing rps documents per second with a
// burst of 1 (no bursting).
func NewLimiter(rps float64) *Limiter {
	return &Limiter{l: rate.NewLimiter(rate.Limit(rps), 1)}
}

// Wait blocks until the rate limit allows the next document.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.l.Wait(ctx)
}
