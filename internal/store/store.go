// Package store is the durable key-value blob holding all user records.
// The tracker loads it once at startup and rewrites it wholesale after
// every mutation; failures are best-effort and surface only in logs.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no blob has been stored yet.
var ErrNotFound = errors.New("record blob not found")

// Store persists a single serialized record map.
type Store interface {
	// Get returns the last stored blob, or ErrNotFound when absent.
	Get(ctx context.Context) ([]byte, error)
	// Set replaces the stored blob with value.
	Set(ctx context.Context, value []byte) error
	// Close releases any underlying resources.
	Close() error
}
