package depgraph

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"unicode"
)

var (
	// ErrInvalidModuleName is returned by [Graph.AddEdge] when either
	// endpoint is not a dotted qualified name.
	ErrInvalidModuleName = errors.New("invalid module name")

	// ErrSelfEdge is returned by [Graph.AddEdge] when a module would be
	// recorded as its own dependency. The edge is not stored.
	ErrSelfEdge = errors.New("module cannot depend on itself")
)

type set map[string]struct{}

// Graph is the project-wide import graph.
//
// The zero value is not usable - use New.
type Graph struct {
	imports   map[string]set // importer -> imported modules
	importers map[string]set // imported -> importing modules
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		imports:   make(map[string]set),
		importers: make(map[string]set),
	}
}

// AddEdge records that from imports to. Adding an existing edge is a no-op.
// Returns ErrSelfEdge when from == to and ErrInvalidModuleName when a name
// is not a valid dotted identifier; in both cases the graph is unchanged.
func (g *Graph) AddEdge(from, to string) error {
	if !ValidName(from) || !ValidName(to) {
		return ErrInvalidModuleName
	}
	if from == to {
		return ErrSelfEdge
	}
	add(g.imports, from, to)
	add(g.importers, to, from)
	return nil
}

func add(m map[string]set, k, v string) {
	s, ok := m[k]
	if !ok {
		s = make(set)
		m[k] = s
	}
	s[v] = struct{}{}
}

// HasEdge reports whether from imports to.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.imports[from][to]
	return ok
}

// Importers returns the sorted list of modules that recorded at least one
// outgoing edge. These are the starting vertices for cycle detection.
func (g *Graph) Importers() []string {
	return slices.Sorted(maps.Keys(g.imports))
}

// Imports returns the sorted modules imported by module.
func (g *Graph) Imports(module string) []string {
	return slices.Sorted(maps.Keys(g.imports[module]))
}

// ImportedBy returns the sorted modules that import module.
func (g *Graph) ImportedBy(module string) []string {
	return slices.Sorted(maps.Keys(g.importers[module]))
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, s := range g.imports {
		n += len(s)
	}
	return n
}

// Len returns the number of distinct modules appearing in any edge.
func (g *Graph) Len() int {
	seen := make(set, len(g.imports)+len(g.importers))
	for k := range g.imports {
		seen[k] = struct{}{}
	}
	for k := range g.importers {
		seen[k] = struct{}{}
	}
	return len(seen)
}

// Dependencies returns the reverse view of the graph: every imported module
// mapped to the sorted modules importing it. The map is a copy.
func (g *Graph) Dependencies() map[string][]string {
	out := make(map[string][]string, len(g.importers))
	for mod, from := range g.importers {
		out[mod] = slices.Sorted(maps.Keys(from))
	}
	return out
}

// Merge adds every edge of other to g.
func (g *Graph) Merge(other *Graph) {
	for from, tos := range other.imports {
		for to := range tos {
			_ = g.AddEdge(from, to)
		}
	}
}

// ValidName reports whether name is a dotted qualified module name: one or
// more non-empty segments made of letters, digits and underscores, none of
// which starts with a digit.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, seg := range strings.Split(name, ".") {
		if seg == "" {
			return false
		}
		for i, r := range seg {
			if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
				continue
			}
			return false
		}
	}
	return true
}
