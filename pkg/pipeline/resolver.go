package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/importlint/pkg/cache"
	"github.com/matzehuels/importlint/pkg/config"
	pkgio "github.com/matzehuels/importlint/pkg/io"
	"github.com/matzehuels/importlint/pkg/resolve"
)

// NewResolver picks the resolver for a project. Documents carrying
// resolutions are answered from that table, falling back to the filesystem
// when search paths are configured. Other documents use the filesystem.
//
// The returned resolver caches in store under a namespace derived from the
// search paths and the table contents, so that runs with different
// environments never share answers.
func NewResolver(p *pkgio.Project, cfg config.Config, store cache.Cache, keyer cache.Keyer) *resolve.CachingResolver {
	paths := append(append([]string(nil), cfg.SearchPaths...), cfg.SitePackages...)
	parts := append([]string(nil), paths...)
	parts = append(parts, cfg.StandardModules...)

	var inner resolve.Resolver
	if p.Resolutions != nil {
		var fallback resolve.Resolver
		if len(paths) > 0 {
			fallback = resolve.NewFSResolver(paths, cfg.StandardModules)
		}
		inner = resolve.NewTableResolver(p.Resolutions, fallback)
		if data, err := json.Marshal(p.Resolutions); err == nil {
			parts = append(parts, "table:"+cache.Hash(data))
		}
	} else {
		inner = resolve.NewFSResolver(paths, cfg.StandardModules)
	}

	ttl := cfg.Cache.TTL.Duration
	return resolve.NewCachingResolver(inner, store, keyer, cache.Fingerprint(parts...), ttl)
}
