package depgraph

import (
	"slices"
	"strings"
)

// CycleSeparator joins the modules of a cycle in its string form.
const CycleSeparator = " -> "

// Cycle is a closed walk in the graph. The last module imports the first.
type Cycle []string

// String renders the cycle as "a -> b -> c".
func (c Cycle) String() string {
	return strings.Join(c, CycleSeparator)
}

// canonical rotates c so that it starts at its smallest module. Two
// rotations of the same cycle have the same canonical form.
func (c Cycle) canonical() Cycle {
	if len(c) == 0 {
		return c
	}
	start := 0
	for i, m := range c {
		if m < c[start] {
			start = i
		}
	}
	out := make(Cycle, 0, len(c))
	out = append(out, c[start:]...)
	return append(out, c[:start]...)
}

// Cycles enumerates every elementary cycle of the graph.
//
// A depth-first search is started from every importing module, in sorted
// order, keeping the current path. The search from start only enters
// modules that sort after start and are not on the path, so each cycle is
// found exactly once: from its smallest module, already in canonical
// rotation. Cycles are reported in discovery order.
//
// The number of elementary cycles can grow exponentially with the graph,
// and so can the search.
func (g *Graph) Cycles() []Cycle {
	var result []Cycle
	for _, start := range g.Importers() {
		path := []string{start}
		onPath := map[string]bool{start: true}

		var dfs func(node string)
		dfs = func(node string) {
			for _, next := range g.Imports(node) {
				switch {
				case next == start:
					result = append(result, slices.Clone(Cycle(path)))
				case next < start || onPath[next]:
				default:
					onPath[next] = true
					path = append(path, next)
					dfs(next)
					path = path[:len(path)-1]
					delete(onPath, next)
				}
			}
		}
		dfs(start)
	}
	return result
}
