// Package throttle provides a small pacing limiter for outbound calls.
// It wraps golang.org/x/time/rate with a nil-safe surface so callers
// can carry an optional limiter without guarding every use.
//
// Example usage:
//
//	lim := throttle.New(2*time.Second, 1)
//	if err := lim.Wait(ctx); err != nil {
//	    return err
//	}
//	resp, err := client.Do(req)
package throttle

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces calls to at most one per configured interval, with a
// small burst allowance. A nil *Limiter never blocks.
type Limiter struct {
	l *rate.Limiter
}

// New returns a limiter allowing one call per minInterval with the
// given burst. Non-positive values fall back to a 1s interval and
// burst 1.
func New(minInterval time.Duration, burst int) *Limiter {
	if minInterval <= 0 {
		minInterval = time.Second
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{l: rate.NewLimiter(rate.Every(minInterval), burst)}
}

// Wait blocks until a slot is available or the context is canceled.
func (t *Limiter) Wait(ctx context.Context) error {
	if t == nil || t.l == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return t.l.Wait(ctx)
}

// Allow reports whether a call may proceed right now without waiting.
func (t *Limiter) Allow() bool {
	if t == nil || t.l == nil {
		return true
	}
	return t.l.Allow()
}
