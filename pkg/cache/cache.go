package cache

import (
	"context"
	"time"
)

// Cache stores opaque values under string keys. Implementations must be
// safe for concurrent use. A Get on a missing or expired key reports a miss
// with a nil error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Entry lifetimes per pipeline stage.
const (
	// TTLGrid applies to raw grid results. They depend only on their
	// inputs and never go stale.
	TTLGrid = 7 * 24 * time.Hour

	// TTLScreen applies to built screen trees.
	TTLScreen = 24 * time.Hour

	// TTLArtifact applies to rendered outputs.
	TTLArtifact = 24 * time.Hour
)
