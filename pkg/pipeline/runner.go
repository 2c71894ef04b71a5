package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/importlint/pkg/cache"
	"github.com/matzehuels/importlint/pkg/config"
	"github.com/matzehuels/importlint/pkg/errors"
	"github.com/matzehuels/importlint/pkg/imports"
	pkgio "github.com/matzehuels/importlint/pkg/io"
	"github.com/matzehuels/importlint/pkg/observability"
	"github.com/matzehuels/importlint/pkg/report"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it to avoid duplicating the analysis flow.
//
// The Runner is stateless except for the cache, the graph backend and the
// logger. Every Execute call builds its own session and resolver, so one
// Runner may serve concurrent runs provided its cache is safe for concurrent
// use.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Backend report.Backend
	Logger  *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Backend: report.Graphviz{},
		Logger:  logger,
	}
}

// Execute analyzes every module of p and builds the report.
//
// cfg.Project defaults to the document's project. Invalid configuration and
// malformed modules abort the run. A reporting failure returns the result,
// findings included, together with the error.
func (r *Runner) Execute(ctx context.Context, p *pkgio.Project, cfg config.Config) (*Result, error) {
	if cfg.Project == "" {
		cfg.Project = p.Project
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result, err := r.Analyze(ctx, p, cfg)
	if err != nil {
		return nil, err
	}

	reportStart := time.Now()
	rep, err := report.NewRenderer(r.Backend, r.Logger).Build(ctx, result.Dependencies, report.Options{
		Project:        cfg.Project,
		ImportGraph:    cfg.ImportGraph,
		ExtImportGraph: cfg.ExtImportGraph,
		IntImportGraph: cfg.IntImportGraph,
	})
	result.Stats.ReportTime = time.Since(reportStart)
	observability.Pipeline().OnReportComplete(ctx, rep.Artifacts, result.Stats.ReportTime, err)

	switch {
	case errors.Is(err, errors.ErrCodeNothingToReport):
	case err != nil:
		result.Report = rep
		return result, fmt.Errorf("report: %w", err)
	default:
		result.Report = rep
		r.Logger.Info("report written", "artifacts", len(rep.Artifacts), "duration", result.Stats.ReportTime)
	}
	return result, nil
}

// Analyze runs the analysis stage only: findings, cycles and dependencies.
// It does not validate cfg.
func (r *Runner) Analyze(ctx context.Context, p *pkgio.Project, cfg config.Config) (result *Result, err error) {
	project := cfg.Project
	if project == "" {
		project = p.Project
	}
	result = &Result{
		RunID:   uuid.NewString(),
		Project: project,
	}
	logger := r.Logger.With("run", result.RunID[:8])

	start := time.Now()
	observability.Pipeline().OnAnalyzeStart(ctx, project, len(p.Modules))
	defer func() {
		observability.Pipeline().OnAnalyzeComplete(ctx, project, len(result.Findings), time.Since(start), err)
	}()

	res := NewResolver(p, cfg, r.Cache, r.Keyer)
	sess := imports.NewSession(cfg, res, logger)
	for _, m := range p.Modules {
		moduleStart := time.Now()
		found, err := sess.AnalyzeModule(ctx, m)
		if err != nil {
			return result, fmt.Errorf("analyze %s: %w", m.Name, err)
		}
		result.Findings = append(result.Findings, found...)
		result.Stats.Statements += len(m.Statements)
		observability.Pipeline().OnModuleComplete(ctx, m.Name, len(found), time.Since(moduleStart))
	}
	result.Findings = append(result.Findings, sess.Close()...)
	imports.SortFindings(result.Findings)

	result.Cycles = sess.Cycles()
	result.Dependencies = sess.Dependencies()
	result.Stats.Modules = sess.Modules()
	result.Stats.Findings = len(result.Findings)
	result.Stats.BySymbol = imports.CountBySymbol(result.Findings)
	result.Stats.Resolutions = res.Len()
	result.Stats.AnalyzeTime = time.Since(start)

	logger.Info("analyzed project",
		"modules", result.Stats.Modules,
		"findings", result.Stats.Findings,
		"cycles", len(result.Cycles),
		"duration", result.Stats.AnalyzeTime)
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
