package report

import (
	"maps"
	"slices"
	"strings"
)

// Tree nests modules by dotted name segment.
type Tree struct {
	children map[string]*Tree
	files    []string
}

// MakeTree builds the tree of deps: "pkg.sub.mod" nests under pkg, then
// sub, and the leaf mod carries the importers of pkg.sub.mod.
func MakeTree(deps map[string][]string) *Tree {
	root := &Tree{children: map[string]*Tree{}}
	for mod, importers := range deps {
		node := root
		for _, part := range strings.Split(mod, ".") {
			child, ok := node.children[part]
			if !ok {
				child = &Tree{children: map[string]*Tree{}}
				node.children[part] = child
			}
			node = child
		}
		node.files = append(node.files, importers...)
	}
	return root
}

// Empty reports whether the tree has no modules.
func (t *Tree) Empty() bool { return len(t.children) == 0 }

// String renders the tree, sorted at every level:
//
//	pkg
//	  \-a (m1)
//	  \-b (m1,m2)
func (t *Tree) String() string {
	var lines []string
	t.render(&lines, "", true)
	return strings.Join(lines, "\n")
}

func (t *Tree) render(lines *[]string, indent string, top bool) {
	names := slices.Sorted(maps.Keys(t.children))
	for i, name := range names {
		node := t.children[name]
		files := ""
		if len(node.files) > 0 {
			sorted := slices.Compact(slices.Sorted(slices.Values(node.files)))
			files = "(" + strings.Join(sorted, ",") + ")"
		}

		var line, sub string
		if top {
			line = name + " " + files
			sub = "  "
		} else {
			line = indent + `\-` + name + " " + files
			if i == len(names)-1 {
				sub = indent + "  "
			} else {
				sub = indent + "| "
			}
		}
		*lines = append(*lines, strings.TrimRight(line, " "))
		node.render(lines, sub, false)
	}
}

// RenderTree is MakeTree(deps).String().
func RenderTree(deps map[string][]string) string {
	return MakeTree(deps).String()
}
