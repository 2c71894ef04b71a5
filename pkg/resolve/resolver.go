// Package resolve answers where an imported module lives.
//
// A [Resolver] is given a module name as written in an import statement,
// together with the importing module, and reports the effective qualified
// name, the file defining it and whether it belongs to the standard library.
// Failures are reported as [*ImportError].
//
// Three implementations are provided:
//   - [FSResolver] looks modules up below a list of search paths
//   - [TableResolver] answers from a table supplied by the source front end
//   - [CachingResolver] memoizes another resolver, optionally backed by a
//     [cache.Cache] shared between runs
package resolve

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Importer identifies the module containing an import statement.
type Importer struct {
	Name string // qualified module name
	File string // source file, may be empty
}

// IsPackage reports whether the importer is a package initializer
// (its file is named __init__).
func (i Importer) IsPackage() bool {
	if i.File == "" {
		return false
	}
	base := filepath.Base(i.File)
	return strings.TrimSuffix(base, filepath.Ext(base)) == "__init__"
}

// Package returns the package an implicit relative import is looked up in:
// the importer itself for package initializers, its parent otherwise.
func (i Importer) Package() string {
	if i.IsPackage() {
		return i.Name
	}
	if idx := strings.LastIndexByte(i.Name, '.'); idx >= 0 {
		return i.Name[:idx]
	}
	return ""
}

// Request is one module lookup.
type Request struct {
	Name     string   // module name as written, without leading dots
	Level    int      // number of leading dots, 0 for absolute imports
	Importer Importer // module containing the import
	Implicit bool     // try the importer's package before absolute lookup
}

// Module is a resolved module.
type Module struct {
	Name     string `json:"name"`               // effective qualified name
	File     string `json:"file,omitempty"`     // defining file, empty for builtins
	Standard bool   `json:"standard,omitempty"` // part of the standard library
}

// ImportError reports that a module could not be located.
type ImportError struct {
	Name   string
	Reason string
}

func (e *ImportError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("cannot import %s", e.Name)
	}
	return e.Reason
}

func notFound(name string) *ImportError {
	return &ImportError{Name: name, Reason: "No module named " + name}
}

// Resolver locates modules.
type Resolver interface {
	// Resolve locates the module named by req.
	Resolve(ctx context.Context, req Request) (Module, error)

	// IsStandard reports whether name belongs to the standard library.
	IsStandard(name string) bool

	// ModulePart returns the longest prefix of the dotted name that is a
	// module, so "pkg.mod.func" yields "pkg.mod".
	ModulePart(ctx context.Context, name string, importer Importer) (string, error)
}

// AbsoluteName converts a relative module reference into an absolute
// qualified name. level is the number of leading dots; level 1 refers to
// the importer's own package.
func AbsoluteName(importer Importer, name string, level int) (string, error) {
	if level <= 0 {
		return name, nil
	}
	base := importer.Package()
	parts := []string{}
	if base != "" {
		parts = strings.Split(base, ".")
	}
	if level-1 >= len(parts) {
		return "", &ImportError{
			Name:   strings.Repeat(".", level) + name,
			Reason: "attempted relative import beyond top-level package",
		}
	}
	parts = parts[:len(parts)-(level-1)]
	if name != "" {
		parts = append(parts, name)
	}
	return strings.Join(parts, "."), nil
}

// Prefixes returns the ancestor-qualified names of a dotted module name,
// shortest first: "a.b.c" yields ["a", "a.b", "a.b.c"].
func Prefixes(name string) []string {
	parts := strings.Split(name, ".")
	out := make([]string, len(parts))
	for i := range parts {
		out[i] = strings.Join(parts[:i+1], ".")
	}
	return out
}

// TopLevel returns the first dotted component of name.
func TopLevel(name string) string {
	top, _, _ := strings.Cut(name, ".")
	return top
}
