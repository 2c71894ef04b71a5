package resolve

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// FSResolver locates modules as files below an ordered list of search
// paths, the way the interpreter walks its module path. Standard library
// membership is decided by a name table, not by the filesystem.
type FSResolver struct {
	searchPaths []string
	standard    map[string]bool
}

// NewFSResolver creates a resolver over searchPaths (earlier entries win).
// extraStandard adds names to the built-in standard library table.
func NewFSResolver(searchPaths []string, extraStandard []string) *FSResolver {
	std := DefaultStandard()
	for _, n := range extraStandard {
		std[n] = true
	}
	paths := make([]string, 0, len(searchPaths))
	for _, p := range searchPaths {
		paths = append(paths, NormalizePath(p))
	}
	return &FSResolver{searchPaths: paths, standard: std}
}

// SearchPaths returns the normalized search paths.
func (r *FSResolver) SearchPaths() []string { return r.searchPaths }

// IsStandard implements Resolver.
func (r *FSResolver) IsStandard(name string) bool {
	return r.standard[name] || r.standard[TopLevel(name)]
}

// Resolve implements Resolver.
func (r *FSResolver) Resolve(ctx context.Context, req Request) (Module, error) {
	name, err := AbsoluteName(req.Importer, req.Name, req.Level)
	if err != nil {
		return Module{}, err
	}

	if req.Level == 0 && req.Implicit {
		if pkg := req.Importer.Package(); pkg != "" {
			rel := pkg + "." + name
			if file, ok := r.locate(rel); ok {
				return Module{Name: rel, File: file}, nil
			}
		}
	}

	if r.IsStandard(name) {
		return Module{Name: name, Standard: true}, nil
	}
	if file, ok := r.locate(name); ok {
		return Module{Name: name, File: file}, nil
	}
	return Module{}, notFound(name)
}

// ModulePart implements Resolver.
func (r *FSResolver) ModulePart(ctx context.Context, name string, importer Importer) (string, error) {
	if r.IsStandard(name) {
		return name, nil
	}
	pkg := importer.Package()
	prefixes := Prefixes(name)
	for i := len(prefixes) - 1; i >= 0; i-- {
		p := prefixes[i]
		if _, ok := r.locate(p); ok {
			return p, nil
		}
		if pkg != "" {
			if _, ok := r.locate(pkg + "." + p); ok {
				return p, nil
			}
		}
	}
	return "", notFound(name)
}

// locate finds the file defining a dotted module name. Packages resolve to
// their __init__ file; a directory without one is a namespace package and
// resolves to the directory itself.
func (r *FSResolver) locate(name string) (string, bool) {
	rel := filepath.Join(strings.Split(name, ".")...)
	var namespace string
	for _, dir := range r.searchPaths {
		base := filepath.Join(dir, rel)
		for _, candidate := range []string{
			filepath.Join(base, "__init__.py"),
			base + ".py",
			base + ".pyi",
		} {
			if isFile(candidate) {
				return candidate, true
			}
		}
		if namespace == "" && isDir(base) {
			namespace = base
		}
	}
	return namespace, namespace != ""
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// NormalizePath returns the absolute, cleaned form of path.
func NormalizePath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Within reports whether path lies inside dir (or is dir). Both are
// normalized first; a sibling sharing a name prefix is not inside.
func Within(path, dir string) bool {
	rel, err := filepath.Rel(NormalizePath(dir), NormalizePath(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

var _ Resolver = (*FSResolver)(nil)
