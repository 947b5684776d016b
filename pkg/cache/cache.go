// Package cache stores synthesized circuits and rendered artifacts keyed by
// a hash of their inputs.
//
// Several backends share the [Cache] interface:
//
//   - [FileCache] writes JSON entries under a directory (CLI default)
//   - [RedisCache] stores entries in Redis with native expiry
//   - [MongoCache] stores entries in a MongoDB collection with a TTL index
//   - [NullCache] never stores anything
//
// Keys are produced by a [Keyer] so that callers never assemble key strings
// by hand. [ScopedKeyer] prefixes every key for namespace isolation.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// TTLCircuit is how long a synthesized circuit stays cached. Synthesis is
	// deterministic for a given input and options, so entries rarely go stale.
	TTLCircuit = 30 * 24 * time.Hour

	// TTLArtifact is how long rendered DAG artifacts stay cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil). A non-nil error means the backend
// itself failed.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// CircuitKeyOpts holds every option that changes the synthesized circuit.
type CircuitKeyOpts struct {
	Metric        string `json:"metric"`
	PreserveOrder bool   `json:"preserve_order"`
	SkipSort      bool   `json:"skip_sort"`
	Shuffles      int    `json:"shuffles"`
	Seed          uint64 `json:"seed"`
}

// Keyer builds cache keys.
type Keyer interface {
	// CircuitKey keys a synthesized circuit by the hash of its operator list.
	CircuitKey(opsHash string, opts CircuitKeyOpts) string

	// DAGKey keys a rendered commutation graph by operator hash and format.
	DAGKey(opsHash, format string) string
}

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// CircuitKey implements Keyer.
func (DefaultKeyer) CircuitKey(opsHash string, opts CircuitKeyOpts) string {
	return hashKey("circuit", opsHash, opts)
}

// DAGKey implements Keyer.
func (DefaultKeyer) DAGKey(opsHash, format string) string {
	return hashKey("dag", opsHash, format)
}

var _ Keyer = DefaultKeyer{}
