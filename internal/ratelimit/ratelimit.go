// Package ratelimit counts events per key over a sliding window. Stores are
// injected so several API instances can share one Redis-backed counter.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed bool
	// Count is the number of events in the window, including this one when
	// it was allowed.
	Count int
	// RetryAfter is how long until the oldest event leaves the window. Zero
	// when allowed.
	RetryAfter time.Duration
}

// Store is a sliding-window counter keyed by identity.
type Store interface {
	// Allow records an event for key at now unless limit events already
	// happened within the trailing window.
	Allow(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (Decision, error)
	// Reset forgets every event recorded for key.
	Reset(ctx context.Context, key string) error
}
