package resolve

import "context"

// Entry is one precomputed answer in a [TableResolver].
type Entry struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`         // effective name when it differs from the key
	File     string `json:"file,omitempty" yaml:"file,omitempty"`         // defining file
	Standard bool   `json:"standard,omitempty" yaml:"standard,omitempty"` // standard library module
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`       // import failure reason
}

// TableResolver answers lookups from a table keyed by absolute module
// name, typically produced by the same front end that extracted the import
// statements. Names missing from the table are delegated to a fallback
// resolver when one is set.
type TableResolver struct {
	entries  map[string]Entry
	fallback Resolver
	standard map[string]bool
}

// NewTableResolver creates a table resolver. fallback may be nil.
func NewTableResolver(entries map[string]Entry, fallback Resolver) *TableResolver {
	if entries == nil {
		entries = map[string]Entry{}
	}
	return &TableResolver{entries: entries, fallback: fallback, standard: DefaultStandard()}
}

// Resolve implements Resolver.
func (r *TableResolver) Resolve(ctx context.Context, req Request) (Module, error) {
	name, err := AbsoluteName(req.Importer, req.Name, req.Level)
	if err != nil {
		return Module{}, err
	}

	if req.Level == 0 && req.Implicit {
		if pkg := req.Importer.Package(); pkg != "" {
			if e, ok := r.entries[pkg+"."+name]; ok && e.Error == "" {
				return e.module(pkg + "." + name), nil
			}
		}
	}

	if e, ok := r.entries[name]; ok {
		if e.Error != "" {
			return Module{}, &ImportError{Name: name, Reason: e.Error}
		}
		return e.module(name), nil
	}
	if r.fallback != nil {
		return r.fallback.Resolve(ctx, Request{Name: name, Importer: req.Importer, Implicit: req.Implicit && req.Level == 0})
	}
	if r.IsStandard(name) {
		return Module{Name: name, Standard: true}, nil
	}
	return Module{}, notFound(name)
}

func (e Entry) module(key string) Module {
	name := e.Name
	if name == "" {
		name = key
	}
	return Module{Name: name, File: e.File, Standard: e.Standard}
}

// IsStandard implements Resolver. Table entries take precedence over the
// fallback and the built-in standard library table.
func (r *TableResolver) IsStandard(name string) bool {
	for _, key := range []string{name, TopLevel(name)} {
		if e, ok := r.entries[key]; ok && e.Error == "" {
			return e.Standard
		}
	}
	if r.fallback != nil {
		return r.fallback.IsStandard(name)
	}
	return r.standard[TopLevel(name)]
}

// ModulePart implements Resolver.
func (r *TableResolver) ModulePart(ctx context.Context, name string, importer Importer) (string, error) {
	if r.IsStandard(name) {
		return name, nil
	}
	prefixes := Prefixes(name)
	for i := len(prefixes) - 1; i >= 0; i-- {
		if e, ok := r.entries[prefixes[i]]; ok && e.Error == "" {
			return prefixes[i], nil
		}
	}
	if r.fallback != nil {
		return r.fallback.ModulePart(ctx, name, importer)
	}
	return "", notFound(name)
}

var _ Resolver = (*TableResolver)(nil)
