package imports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/importlint/pkg/config"
	"github.com/matzehuels/importlint/pkg/depgraph"
	"github.com/matzehuels/importlint/pkg/resolve"
)

// ErrSessionClosed is returned by AnalyzeModule after Close.
var ErrSessionClosed = errors.New("session closed")

// Session holds the state of one project-wide analysis run: the dependency
// graph and the category cache. Everything else is per module.
type Session struct {
	cfg        config.Config
	resolver   resolve.Resolver
	categories *Categorizer
	graph      *depgraph.Graph
	logger     *log.Logger
	ignored    map[string]bool

	modules int
	cycles  []depgraph.Cycle
	closed  bool
}

// NewSession starts a run. A nil logger uses log.Default().
func NewSession(cfg config.Config, r resolve.Resolver, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	ignored := make(map[string]bool, len(cfg.IgnoredModules))
	for _, m := range cfg.IgnoredModules {
		ignored[m] = true
	}
	return &Session{
		cfg:        cfg,
		resolver:   r,
		categories: NewCategorizer(r, cfg.SitePackages),
		graph:      depgraph.New(),
		logger:     logger,
		ignored:    ignored,
	}
}

// NewClassifier returns the state machine for one module, for callers that
// stream statements themselves. Most callers use AnalyzeModule.
func (s *Session) NewClassifier(m *Module) *Classifier {
	return newClassifier(s, m)
}

// AnalyzeModule runs every per-module check over m and records its
// dependencies in the session graph.
func (s *Session) AnalyzeModule(ctx context.Context, m *Module) ([]Finding, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if !depgraph.ValidName(m.Name) {
		return nil, fmt.Errorf("%w: %q", depgraph.ErrInvalidModuleName, m.Name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	c := newClassifier(s, m)
	for i := range m.Statements {
		if _, err := c.Process(ctx, &m.Statements[i]); err != nil {
			return c.Findings(), err
		}
	}
	if _, err := c.Finish(ctx); err != nil {
		return c.Findings(), err
	}
	s.modules++

	s.logger.Debug("analyzed module", "module", m.Name, "statements", len(m.Statements),
		"findings", len(c.Findings()), "elapsed", time.Since(start))
	return c.Findings(), nil
}

// Close ends the run and reports cyclic imports, unless that finding is
// disabled. Closing twice returns nothing the second time.
func (s *Session) Close() []Finding {
	if s.closed {
		return nil
	}
	s.closed = true
	if !s.enabled(CyclicImport) {
		return nil
	}

	s.cycles = s.graph.Cycles()
	out := make([]Finding, 0, len(s.cycles))
	for _, cycle := range s.cycles {
		f := newFinding(CyclicImport, cycle.String())
		f.Module = cycle[0]
		out = append(out, f)
	}
	s.logger.Debug("cycle detection", "modules", s.graph.Len(), "edges", s.graph.EdgeCount(), "cycles", len(s.cycles))
	return out
}

// Cycles returns the cycles found by Close.
func (s *Session) Cycles() []depgraph.Cycle { return s.cycles }

// Graph returns the dependency graph accumulated so far.
func (s *Session) Graph() *depgraph.Graph { return s.graph }

// Dependencies maps every imported module to its sorted importers.
func (s *Session) Dependencies() map[string][]string { return s.graph.Dependencies() }

// Modules returns the number of modules analyzed.
func (s *Session) Modules() int { return s.modules }

func (s *Session) enabled(k Kind) bool {
	return !s.cfg.Disabled(k.Name, k.ID)
}
