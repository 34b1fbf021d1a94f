// Package store provides the external keyed TTL store behind refresh-token
// tracking and rate-limit counters. Last write wins; no compare-and-swap is
// needed because only one refresh token is ever logically valid per subject.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("store: key not found")

type Store interface {
	// Set writes the value under key, replacing any previous entry.
	// The entry disappears after ttl.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns the current value or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Delete removes the entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Increment adds one to a counter and returns the new value. The first
	// hit in a window creates the counter with the given ttl; later hits
	// leave the expiry untouched, so the window resets only once the entry
	// lapses.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
}
