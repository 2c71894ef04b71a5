// Package imports analyzes the import statements of a multi-module program.
//
// The package consumes the statements of each module as produced by a
// source front end (see [Module] and [Statement]) and reports structural
// problems as [Finding] values: imports in the wrong category order, imports
// that are not grouped by package, imports after code, re-imports,
// self-imports, wildcard and deprecated imports, misplaced __future__
// directives, unresolvable modules and, once every module has been seen,
// cyclic imports.
//
// # Sessions
//
// A [Session] owns the state shared by all modules of one run: the
// dependency graph and the category cache. Modules are analyzed one at a
// time with [Session.AnalyzeModule]; per-module ordering state is created
// for that call and discarded when it returns. [Session.Close] runs cycle
// detection over the accumulated graph.
//
//	s := imports.NewSession(cfg, resolver, logger)
//	for _, m := range project.Modules {
//	    found, err := s.AnalyzeModule(ctx, m)
//	    ...
//	}
//	found = append(found, s.Close()...)
//
// A Session is not safe for concurrent use.
//
// # Control-flow exclusivity
//
// Whether two statements can both execute in one run is decided by the
// front end and handed in through [Exclusivity]. The analysis only ever
// queries it.
package imports
