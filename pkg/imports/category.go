package imports

import (
	"context"
	"errors"

	"github.com/matzehuels/importlint/pkg/resolve"
)

// Category is the ordering class of an import.
type Category int

const (
	// Unknown marks imports whose package could not be located; they take
	// no part in ordering checks.
	Unknown Category = iota
	Standard
	External
	Local
)

func (c Category) String() string {
	switch c {
	case Standard:
		return "standard"
	case External:
		return "external"
	case Local:
		return "local"
	default:
		return "unknown"
	}
}

// Categorizer classifies module names as standard, external or local.
// External modules live below one of the site-packages directories; any
// other resolvable module is local. Answers for non-standard names are
// cached per top-level package for the lifetime of the categorizer.
type Categorizer struct {
	resolver     resolve.Resolver
	sitePackages []string
	packages     map[string]Category
}

// NewCategorizer creates a categorizer. sitePackages are normalized.
func NewCategorizer(r resolve.Resolver, sitePackages []string) *Categorizer {
	dirs := make([]string, 0, len(sitePackages))
	for _, d := range sitePackages {
		if d != "" {
			dirs = append(dirs, resolve.NormalizePath(d))
		}
	}
	return &Categorizer{resolver: r, sitePackages: dirs, packages: make(map[string]Category)}
}

// Categorize returns the category of modname. Only resolver errors other
// than a failed lookup are returned.
func (c *Categorizer) Categorize(ctx context.Context, modname string) (Category, error) {
	if c.resolver.IsStandard(modname) {
		return Standard, nil
	}
	pkg := resolve.TopLevel(modname)
	if cat, ok := c.packages[pkg]; ok {
		return cat, nil
	}

	cat := Unknown
	mod, err := c.resolver.Resolve(ctx, resolve.Request{Name: pkg})
	var ie *resolve.ImportError
	switch {
	case errors.As(err, &ie):
	case err != nil:
		return Unknown, err
	case mod.Standard:
		cat = Standard
	case mod.File == "":
	case c.external(mod.File):
		cat = External
	default:
		cat = Local
	}
	c.packages[pkg] = cat
	return cat, nil
}

func (c *Categorizer) external(file string) bool {
	for _, dir := range c.sitePackages {
		if resolve.Within(file, dir) {
			return true
		}
	}
	return false
}
