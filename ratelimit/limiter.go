// Package ratelimit provides a minimal QPS limiter for metered HTTP APIs.
//
// The limiter enforces a fixed interval between successive calls. It is
// deliberately a queue of one: a caller holding the lock sleeps out its
// interval before the next caller may even compute a wait, so concurrent
// callers serialize and the configured rate holds globally.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter spaces calls so that at most qps of them start per second.
// The zero value is not usable; use New.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// New returns a Limiter allowing qps calls per second. A qps of zero or
// less is treated as one.
func New(qps int) *Limiter {
	if qps <= 0 {
		qps = 1
	}
	return &Limiter{interval: time.Second / time.Duration(qps)}
}

// Wait blocks until the caller may proceed, or until ctx is done. On a
// context error the slot is not consumed.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	wait := l.interval - time.Since(l.last)
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	l.last = time.Now()
	return nil
}
