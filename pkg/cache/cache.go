// Package cache provides byte-oriented caches for module resolution results.
//
// Resolving a module name walks the search paths on disk. Results are stable
// for a given interpreter layout, so they can be reused across runs (file
// cache) or shared between CI workers (Redis cache).
//
// All backends implement [Cache]. [NullCache] disables caching, [FileCache]
// stores JSON entries under a directory, and [RedisCache] talks to a Redis
// server. Keys are produced by a [Keyer] so callers never build them by hand.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values by key.
type Cache interface {
	// Get returns the value for key and whether it was present.
	// A missing or expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ResolveKeyOpts identifies one resolution request.
type ResolveKeyOpts struct {
	Level    int    // relative import level, 0 for absolute
	Importer string // qualified name of the importing module
	Implicit bool   // implicit relative lookups allowed
}

// Keyer generates cache keys.
type Keyer interface {
	// ResolveKey returns the key of a module resolution. namespace
	// fingerprints the resolver configuration (search paths, stdlib table).
	ResolveKey(namespace, name string, opts ResolveKeyOpts) string
}

// DefaultKeyer builds hashed keys of the form "resolve:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResolveKey implements Keyer.
func (DefaultKeyer) ResolveKey(namespace, name string, opts ResolveKeyOpts) string {
	// Absolute lookups do not depend on the importer.
	if opts.Level == 0 && !opts.Implicit {
		opts.Importer = ""
	}
	return hashKey("resolve", namespace, name, opts.Level, opts.Importer, opts.Implicit)
}
