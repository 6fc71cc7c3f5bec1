// Package cache provides content-addressed caching for pipeline stages.
//
// The pipeline caches three kinds of data, each with its own key shape and
// time-to-live:
//
//   - Graph: the ingested graph, keyed by input file content hashes
//   - Layout: computed node positions, keyed by graph hash and layout options
//   - Artifact: rendered output bytes, keyed by graph hash and render options
//
// Keys are content-addressed, so entries never serve stale data; the TTLs
// exist only to bound disk or Redis usage over time.
//
// Two backends are provided: [FileCache] for local CLI usage and
// [RedisCache] for shared server deployments. [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// Time-to-live per stage. Graph entries are cheapest to recompute and
// expire first; layouts and artifacts are kept longer.
const (
	TTLGraph    = 7 * 24 * time.Hour
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
//
// Get returns (nil, false, nil) on a miss; errors are reserved for backend
// failures. A ttl of zero in Set stores the entry without expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
