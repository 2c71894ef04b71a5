package resolve

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/matzehuels/importlint/pkg/cache"
	"github.com/matzehuels/importlint/pkg/observability"
)

const cacheKeyType = "resolve"

// CachingResolver memoizes another resolver. Every answer, including import
// failures, is kept in memory for the lifetime of the resolver and, when a
// backing cache is configured, persisted there under keys namespaced by the
// resolver configuration.
//
// CachingResolver is not safe for concurrent use.
type CachingResolver struct {
	inner     Resolver
	store     cache.Cache
	keyer     cache.Keyer
	namespace string
	ttl       time.Duration

	memo  map[string]cachedAnswer
	parts map[string]cachedAnswer
}

type cachedAnswer struct {
	Module Module `json:"module"`
	Error  string `json:"error,omitempty"`
	Part   string `json:"part,omitempty"`
}

// NewCachingResolver wraps inner. store and keyer may be nil, in which case
// answers are only kept in memory.
func NewCachingResolver(inner Resolver, store cache.Cache, keyer cache.Keyer, namespace string, ttl time.Duration) *CachingResolver {
	if store == nil {
		store = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &CachingResolver{
		inner:     inner,
		store:     store,
		keyer:     keyer,
		namespace: namespace,
		ttl:       ttl,
		memo:      make(map[string]cachedAnswer),
		parts:     make(map[string]cachedAnswer),
	}
}

// Resolve implements Resolver.
func (r *CachingResolver) Resolve(ctx context.Context, req Request) (Module, error) {
	key := r.keyer.ResolveKey(r.namespace, req.Name, cache.ResolveKeyOpts{
		Level:    req.Level,
		Importer: req.Importer.Package(),
		Implicit: req.Implicit,
	})
	if a, ok := r.memo[key]; ok {
		return a.result(req.Name)
	}

	if data, hit, err := r.store.Get(ctx, key); err == nil && hit {
		var a cachedAnswer
		if json.Unmarshal(data, &a) == nil {
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			r.memo[key] = a
			return a.result(req.Name)
		}
	}
	observability.Cache().OnCacheMiss(ctx, cacheKeyType)

	mod, err := r.inner.Resolve(ctx, req)
	var a cachedAnswer
	if err != nil {
		var ie *ImportError
		if !errors.As(err, &ie) {
			// Not an answer about the module; do not remember it.
			return Module{}, err
		}
		a.Error = ie.Reason
	} else {
		a.Module = mod
	}
	r.memo[key] = a

	if data, err := json.Marshal(a); err == nil {
		if r.store.Set(ctx, key, data, r.ttl) == nil {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
		}
	}
	return a.result(req.Name)
}

func (a cachedAnswer) result(name string) (Module, error) {
	if a.Error != "" {
		return Module{}, &ImportError{Name: name, Reason: a.Error}
	}
	return a.Module, nil
}

// IsStandard implements Resolver. Table lookups are cheap and not cached.
func (r *CachingResolver) IsStandard(name string) bool {
	return r.inner.IsStandard(name)
}

// ModulePart implements Resolver. Results are memoized in memory only.
func (r *CachingResolver) ModulePart(ctx context.Context, name string, importer Importer) (string, error) {
	key := importer.Package() + "\x00" + name
	if a, ok := r.parts[key]; ok {
		if a.Error != "" {
			return "", &ImportError{Name: name, Reason: a.Error}
		}
		return a.Part, nil
	}
	part, err := r.inner.ModulePart(ctx, name, importer)
	var ie *ImportError
	switch {
	case err == nil:
		r.parts[key] = cachedAnswer{Part: part}
	case errors.As(err, &ie):
		r.parts[key] = cachedAnswer{Error: ie.Reason}
	}
	return part, err
}

// Len returns the number of memoized resolutions.
func (r *CachingResolver) Len() int { return len(r.memo) }

var _ Resolver = (*CachingResolver)(nil)
