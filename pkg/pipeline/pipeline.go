// Package pipeline runs a complete import analysis for importlint.
//
// The pipeline is shared by the CLI and the HTTP server so that both report
// exactly the same findings for the same project document.
//
// # Architecture
//
// A run has three stages:
//
//  1. Resolve: pick a module resolver for the document (answers supplied by
//     the front end, the filesystem, or both) and wrap it in a cache
//  2. Analyze: feed every module through an [imports.Session], then close
//     the session to detect import cycles
//  3. Report: render the external dependency tree and write the configured
//     graph files
//
// A reporting failure does not discard the analysis: Execute returns the
// result with its findings together with the error.
//
// # Usage
//
//	runner := pipeline.NewRunner(store, nil, logger)
//	defer runner.Close()
//
//	project, err := pkgio.ImportProject("project.json")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, project, cfg)
//	if err != nil {
//	    return err
//	}
//	for _, f := range result.Findings {
//	    fmt.Println(f)
//	}
package pipeline

import (
	"time"

	"github.com/matzehuels/importlint/pkg/depgraph"
	"github.com/matzehuels/importlint/pkg/imports"
	"github.com/matzehuels/importlint/pkg/report"
)

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and server responses.
	RunID string `json:"run_id"`

	// Project is the analyzed root package, if known.
	Project string `json:"project,omitempty"`

	// Findings are sorted by module, line and id.
	Findings []imports.Finding `json:"findings"`

	// Cycles are the import cycles found between analyzed modules.
	Cycles []depgraph.Cycle `json:"cycles,omitempty"`

	// Dependencies maps every imported module to its importers.
	Dependencies map[string][]string `json:"dependencies"`

	// Report is nil when there was nothing to report.
	Report *report.Report `json:"report,omitempty"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Modules     int            `json:"modules"`
	Statements  int            `json:"statements"`
	Findings    int            `json:"findings"`
	BySymbol    map[string]int `json:"by_symbol,omitempty"`
	Resolutions int            `json:"resolutions"`
	AnalyzeTime time.Duration  `json:"analyze_time"`
	ReportTime  time.Duration  `json:"report_time"`
}

// HasFindings reports whether the run produced any finding.
func (r *Result) HasFindings() bool {
	return len(r.Findings) > 0
}
