// Package depgraph records which modules import which other modules across a
// whole analysis run and enumerates the import cycles among them.
//
// # Overview
//
// A [Graph] is a membership-only mapping from an importing module to the set
// of modules it imports. Next to the forward edges it keeps the reverse view
// (imported module to the modules importing it), which is what dependency
// reports are built from.
//
// The graph grows monotonically while modules are analyzed and is treated as
// read-only once [Graph.Cycles] is called. Self-edges are never stored: a
// module cannot depend on itself.
//
// # Basic Usage
//
//	g := depgraph.New()
//	g.AddEdge("app.views", "app.models")
//	g.AddEdge("app.models", "app.views")
//	for _, c := range g.Cycles() {
//	    fmt.Println(c) // app.models -> app.views
//	}
//
// # Concurrency
//
// Graph is not safe for concurrent use. Analyses running in parallel must
// serialize their calls to [Graph.AddEdge] or build one graph per worker and
// combine them with [Graph.Merge] before computing cycles.
package depgraph
