// Package cache stores rendered artifacts keyed by input content and
// render options.
//
// Rendering a mammalian genome takes minutes; re-running the CLI with
// the same input and options should not. Artifacts are keyed by the
// SHA-256 of the input file plus the options that affect pixel output,
// so any change to either misses cleanly.
//
// Backends:
//   - FileCache: per-user cache directory, for normal CLI use
//   - RedisCache: shared cache for render farms
//   - NullCache: disables caching
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached. Input files
// rarely change, so this is generous.
const TTLArtifact = 30 * 24 * time.Hour

// Cache is the interface for artifact storage backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL; ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render options that change pixel output and
// therefore partition the cache.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Palette string `json:"palette"` // palette file hash, empty for the default palette
	Contig  string `json:"contig"`  // single plucked contig, empty for whole input
}

// ArtifactKey generates the cache key for a rendered artifact.
func ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}
