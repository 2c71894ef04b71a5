// Package pkg provides the core libraries of importlint, a checker for the
// import structure of Python projects.
//
// # Overview
//
// importlint reads a parsed project (modules and their top-level statement
// streams) and reports import problems: unresolvable modules, reimports,
// ordering and grouping mistakes, misplaced imports, wildcard and deprecated
// imports, and cycles in the project's import graph. It does not parse
// Python itself; a front end supplies the statement streams as a JSON or
// YAML document.
//
// # Architecture
//
// The typical data flow:
//
//	Project document (JSON/YAML)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [resolve] package (locate modules: table, filesystem, cache)
//	         ↓
//	    [imports] package (per-module checks + import graph)
//	         ↓
//	    [depgraph] package (dependency graph + cycle detection)
//	         ↓
//	    [report] package (external tree + Graphviz output)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/importlint/pkg/config"
//	    pkgio "github.com/matzehuels/importlint/pkg/io"
//	    "github.com/matzehuels/importlint/pkg/pipeline"
//	)
//
//	p, _ := pkgio.ImportProject("project.json")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	result, _ := runner.Execute(context.Background(), p, config.Default())
//	for _, f := range result.Findings {
//	    fmt.Println(f)
//	}
//
// # Main Packages
//
// ## Analysis
//
// [imports] - The statement model, the finding kinds and the per-module
// classifier. A [imports.Session] spans one run and owns the import graph.
//
// [resolve] - Module location. [resolve.TableResolver] answers from the
// resolutions in the project document, [resolve.FSResolver] searches
// directories, and [resolve.CachingResolver] memoizes either one.
//
// [depgraph] - The module dependency graph and elementary cycle detection.
//
// ## Output
//
// [report] - The external dependency tree and DOT/SVG/PNG graph files.
//
// [io] - Reading project documents and writing JSON results.
//
// ## Infrastructure
//
// [pipeline] - Resolve, analyze and report as one run. Used by the CLI and
// the HTTP server so both behave the same.
//
// [cache] - Resolution caches: null, file and Redis backends behind one
// interface, plus key derivation and retry helpers.
//
// [config] - Checker options loaded from TOML.
//
// [errors] - Coded errors with user-facing messages and HTTP status mapping.
//
// [observability] - Hooks for pipeline, cache and server events.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/imports/...  # Specific package
//	go test -run Example       # Examples only
//
// [imports]: https://pkg.go.dev/github.com/matzehuels/importlint/pkg/imports
// [resolve]: https://pkg.go.dev/github.com/matzehuels/importlint/pkg/resolve
// [depgraph]: https://pkg.go.dev/github.com/matzehuels/importlint/pkg/depgraph
// [report]: https://pkg.go.dev/github.com/matzehuels/importlint/pkg/report
// [io]: https://pkg.go.dev/github.com/matzehuels/importlint/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/importlint/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/importlint/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/importlint/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/importlint/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/importlint/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/importlint/pkg/buildinfo
package pkg
