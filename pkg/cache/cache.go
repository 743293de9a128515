// Package cache provides pipeline result caching.
//
// The analysis pipeline caches each stage output (cluster assignments,
// computed layouts, rendered artifacts) keyed by a content hash of the
// stage inputs. Three backends implement the [Cache] interface:
//
//   - FileCache: JSON entries under a local directory, for CLI usage
//   - RedisCache: shared cache for server deployments (go-redis)
//   - NullCache: no-op, for tests and --no-cache runs
//
// Keys are produced by a [Keyer] so that the CLI and the HTTP API derive
// identical keys for identical inputs. Wrap a keyer with [NewScopedKeyer]
// to namespace keys per tenant on a shared Redis.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// TTLs per pipeline stage. Cluster assignments and layouts are pure
// functions of their inputs and keep for a week; rendered artifacts are
// larger and cycle out daily.
const (
	TTLCluster  = 7 * 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache stores stage outputs as opaque bytes.
//
// Get reports a miss with (nil, false, nil); errors are reserved for
// backend failures. A ttl of 0 on Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultDir returns the default pipeline cache directory,
// ~/.cache/cortica/pipeline.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "cortica", "pipeline"), nil
}
