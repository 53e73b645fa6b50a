package cache

import (
	"context"
	"time"
)

// Cache is the shared interface for pipeline caching backends.
//
// Values are opaque byte slices; keys come from a [Keyer] so every backend
// sees the same namespace layout. Backends must treat a missing key as a
// miss, not an error.
type Cache interface {
	// Get retrieves a value. The boolean reports whether the key was present
	// and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given time-to-live.
	// A ttl <= 0 stores the value without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Time-to-live defaults used by the visualization pipeline.
const (
	// TTLGraph bounds cached projections. Projection is cheap to recompute,
	// so a short TTL keeps the cache small.
	TTLGraph = 24 * time.Hour

	// TTLArtifact bounds rendered artifacts. Artifact keys are
	// content-addressed, so the TTL limits disk growth rather than
	// enforcing freshness.
	TTLArtifact = 7 * 24 * time.Hour
)
