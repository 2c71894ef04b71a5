// Package report renders the dependency data collected by an analysis run.
//
// Two renderings are provided:
//
//   - a text tree of external dependencies, nesting modules by their dotted
//     name and annotating each with the modules importing it ([Tree])
//   - graph descriptions in Graphviz DOT syntax ([ToDOT]), written as
//     .dot/.gv text or rendered to SVG, PNG or JPEG through go-graphviz
//
// Dependency data is a map from imported module to the sorted names of the
// modules importing it, as returned by depgraph.Graph.Dependencies.
package report
