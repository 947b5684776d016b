package cache

// ScopedKeyer wraps a Keyer with a prefix so that several consumers can share
// one backend without colliding, e.g. the HTTP server and the CLI pointing at
// the same Redis instance:
//
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// CircuitKey generates a prefixed key for circuit caching.
func (k *ScopedKeyer) CircuitKey(opsHash string, opts CircuitKeyOpts) string {
	return k.prefix + k.inner.CircuitKey(opsHash, opts)
}

// DAGKey generates a prefixed key for DAG artifact caching.
func (k *ScopedKeyer) DAGKey(opsHash, format string) string {
	return k.prefix + k.inner.DAGKey(opsHash, format)
}
