package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT describes deps as a directed graph named name, one box node per
// module and one edge from each importer to the module it imports.
func ToDOT(name string, deps map[string][]string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", name)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  charset=\"utf-8\";\n")
	buf.WriteString("  URL=\".\" node[shape=\"box\"];\n")

	imported := slices.Sorted(maps.Keys(deps))
	done := make(map[string]bool)
	emit := func(mod string) {
		if !done[mod] {
			done[mod] = true
			fmt.Fprintf(&buf, "  %q;\n", mod)
		}
	}
	for _, mod := range imported {
		emit(mod)
		for _, importer := range deps[mod] {
			emit(importer)
		}
	}

	for _, mod := range imported {
		for _, importer := range slices.Sorted(slices.Values(deps[mod])) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", importer, mod)
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

// GraphName returns the graph name used for a file: its base name without
// extension.
func GraphName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Backend turns a DOT description into an image.
type Backend interface {
	Render(ctx context.Context, dot []byte, format string, w io.Writer) error
}

// Formats maps file extensions to backend formats. The empty format means
// the DOT text itself is written.
var Formats = map[string]string{
	".dot":  "",
	".gv":   "",
	".svg":  string(graphviz.SVG),
	".png":  string(graphviz.PNG),
	".jpg":  string(graphviz.JPG),
	".jpeg": string(graphviz.JPG),
}

// FormatFor returns the backend format for path and whether the extension
// is supported.
func FormatFor(path string) (string, bool) {
	f, ok := Formats[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// Graphviz renders DOT with go-graphviz.
type Graphviz struct{}

// Render implements Backend.
func (Graphviz) Render(ctx context.Context, dot []byte, format string, w io.Writer) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if err := gv.Render(ctx, g, graphviz.Format(format), w); err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	return nil
}
