// Package pacer spaces successive page requests a fixed interval apart.
package pacer

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer blocks between successive requests so the site sees at most one
// request per interval. It uses the token bucket algorithm with a burst of
// one: the first request proceeds immediately, every later one waits out the
// full interval. A zero or negative interval disables pacing.
type Pacer struct {
	limiter *rate.Limiter
}

// New creates a Pacer with the given minimum interval between requests.
func New(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next request may proceed according to the interval.
// If the context is cancelled before the interval elapses, an error is
// returned.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.limiter == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return p.limiter.Wait(ctx)
}
