package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when a Redis database is shared with other applications
// or when several projects are checked against the same server.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "importlint:")
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

// ResolveKey generates a prefixed key for module resolution caching.
func (k *ScopedKeyer) ResolveKey(namespace, name string, opts ResolveKeyOpts) string {
	return k.prefix + k.inner.ResolveKey(namespace, name, opts)
}
