package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/importlint/pkg/errors"
)

// ErrNothingToReport is returned when there is no dependency data for a
// report or no output is configured.
var ErrNothingToReport = errors.New(errors.ErrCodeNothingToReport, "nothing to report")

// Scope selects part of the dependency data.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeExternal Scope = "external"
	ScopeInternal Scope = "internal"
)

// Internal reports whether module is project or one of its descendants.
// With no project, nothing is internal.
func Internal(module, project string) bool {
	if project == "" {
		return false
	}
	return module == project || strings.HasPrefix(module, project+".")
}

// Select returns the entries of deps in scope.
func Select(deps map[string][]string, project string, scope Scope) map[string][]string {
	if scope == ScopeAll || scope == "" {
		return deps
	}
	out := make(map[string][]string)
	for mod, importers := range deps {
		if Internal(mod, project) == (scope == ScopeInternal) {
			out[mod] = importers
		}
	}
	return out
}

// Options say what to report.
type Options struct {
	Project        string
	ImportGraph    string
	ExtImportGraph string
	IntImportGraph string
}

// Report is the rendered output of a run.
type Report struct {
	// ExternalTree is the text tree of external dependencies.
	ExternalTree string `json:"external_tree,omitempty"`

	// Paragraphs describe the graph files written.
	Paragraphs []string `json:"paragraphs,omitempty"`

	// Artifacts are the paths of the graph files written.
	Artifacts []string `json:"artifacts,omitempty"`
}

// Renderer writes reports.
type Renderer struct {
	backend Backend
	logger  *log.Logger
}

// NewRenderer creates a renderer. A nil backend uses Graphviz and a nil
// logger log.Default().
func NewRenderer(backend Backend, logger *log.Logger) *Renderer {
	if backend == nil {
		backend = Graphviz{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{backend: backend, logger: logger}
}

// ExternalTree renders the external dependency tree.
func (r *Renderer) ExternalTree(deps map[string][]string, project string) (string, error) {
	tree := MakeTree(Select(deps, project, ScopeExternal))
	if tree.Empty() {
		return "", ErrNothingToReport
	}
	return tree.String(), nil
}

// WriteGraph writes the scoped dependency graph to path and returns the
// report paragraph describing it.
func (r *Renderer) WriteGraph(ctx context.Context, path string, deps map[string][]string, project string, scope Scope) (string, error) {
	format, ok := FormatFor(path)
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q (use .dot, .gv, .svg, .png or .jpg)", filepath.Ext(path))
	}

	dot := ToDOT(GraphName(path), Select(deps, project, scope))
	data := []byte(dot)
	if format != "" {
		var buf bytes.Buffer
		if err := r.backend.Render(ctx, data, format, &buf); err != nil {
			return "", errors.Wrap(errors.ErrCodeInternal, err, "render %s", path)
		}
		data = buf.Bytes()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", errors.Wrap(errors.ErrCodeUnwritableOutput, err, "create directory for %s", path)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeUnwritableOutput, err, "write %s", path)
	}
	r.logger.Debug("graph written", "path", path, "scope", scope, "bytes", len(data))

	prefix := ""
	if scope != ScopeAll {
		prefix = string(scope) + " "
	}
	return prefix + "imports graph has been written to " + path, nil
}

// WriteGraphs writes every configured graph file. It stops at the first
// failure and returns what was written up to then.
func (r *Renderer) WriteGraphs(ctx context.Context, deps map[string][]string, opts Options) (*Report, error) {
	rep := &Report{}
	if len(deps) == 0 || (opts.ImportGraph == "" && opts.ExtImportGraph == "" && opts.IntImportGraph == "") {
		return rep, ErrNothingToReport
	}
	outputs := []struct {
		path  string
		scope Scope
	}{
		{opts.ImportGraph, ScopeAll},
		{opts.ExtImportGraph, ScopeExternal},
		{opts.IntImportGraph, ScopeInternal},
	}
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		para, err := r.WriteGraph(ctx, o.path, deps, opts.Project, o.scope)
		if err != nil {
			return rep, err
		}
		rep.Paragraphs = append(rep.Paragraphs, para)
		rep.Artifacts = append(rep.Artifacts, o.path)
	}
	return rep, nil
}

// Build renders the external tree and writes the configured graphs.
// Sections without data are left out; when every section is empty the
// result is ErrNothingToReport. A failed graph write returns the report
// built so far together with the error.
func (r *Renderer) Build(ctx context.Context, deps map[string][]string, opts Options) (*Report, error) {
	rep := &Report{}
	tree, err := r.ExternalTree(deps, opts.Project)
	if err == nil {
		rep.ExternalTree = tree
	}

	graphs, err := r.WriteGraphs(ctx, deps, opts)
	rep.Paragraphs = graphs.Paragraphs
	rep.Artifacts = graphs.Artifacts
	switch {
	case errors.Is(err, errors.ErrCodeNothingToReport):
	case err != nil:
		return rep, err
	}

	if rep.ExternalTree == "" && len(rep.Paragraphs) == 0 {
		return rep, ErrNothingToReport
	}
	return rep, nil
}
