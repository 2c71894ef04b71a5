package imports

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/importlint/pkg/resolve"
)

// Classifier is the per-module state machine. It is fed the statements of
// one module in source order through Process and closed with Finish, which
// runs the ordering and grouping checks over the recorded imports.
//
// A Classifier is obtained from [Session.NewClassifier] and must not be
// reused for another module.
type Classifier struct {
	s        *Session
	module   *Module
	importer resolve.Importer
	excl     Exclusivity
	reimport *ReimportDetector

	firstNonImport *Statement
	stack          []stackEntry
	prev           map[string]*Statement // last statement seen per body
	findings       []Finding
	done           bool
}

// stackEntry is a module-scope import and the module name it is
// categorized by.
type stackEntry struct {
	stmt *Statement
	name string
}

func newClassifier(s *Session, m *Module) *Classifier {
	m.normalize()
	excl := m.exclusivity()
	return &Classifier{
		s:        s,
		module:   m,
		importer: resolve.Importer{Name: m.Name, File: m.File},
		excl:     excl,
		reimport: NewReimportDetector(m, excl),
		prev:     make(map[string]*Statement),
	}
}

// Process handles the next statement of the module. st must be one of the
// module's statements. Only resolver failures other than a missing module
// are returned as errors.
func (c *Classifier) Process(ctx context.Context, st *Statement) ([]Finding, error) {
	if c.done {
		return nil, ErrClassifierDone
	}
	start := len(c.findings)
	prev := c.prev[st.Body]
	c.prev[st.Body] = st

	var err error
	switch st.Kind {
	case KindImport:
		err = c.visitImport(ctx, st)
	case KindImportFrom:
		err = c.visitImportFrom(ctx, st, prev)
	default:
		c.trackPosition(st)
	}
	return c.findings[start:], err
}

func (c *Classifier) visitImport(ctx context.Context, st *Statement) error {
	c.checkReimport(st, "", 0)

	names := make([]string, len(st.Names))
	for i, a := range st.Names {
		names[i] = a.Name
	}
	if len(names) >= 2 {
		c.emit(st, MultipleImports, strings.Join(names, ", "))
	}
	c.checkSameLine(st)

	for _, name := range names {
		c.checkDeprecated(st, name)
		mod, ok, err := c.importModule(ctx, st, name, 0)
		if err != nil {
			return err
		}
		if st.Scope.Kind == ScopeModule {
			c.checkPosition(st)
			c.record(st, mod, ok, name)
		}
		if !ok {
			continue
		}
		c.checkRelative(st, mod, name)
		if err := c.addImported(ctx, st, mod.Name); err != nil {
			return err
		}
	}
	return nil
}

func (c *Classifier) visitImportFrom(ctx context.Context, st *Statement, prev *Statement) error {
	base := st.Module
	c.checkMisplacedFuture(st, prev)
	c.checkDeprecated(st, base)
	c.checkWildcard(st)
	c.checkSameLine(st)
	c.checkReimport(st, base, st.Level)

	mod, ok, err := c.importModule(ctx, st, base, st.Level)
	if err != nil {
		return err
	}
	if st.Scope.Kind == ScopeModule {
		raw := base
		if raw == "" && len(st.Names) > 0 {
			raw = st.Names[0].Name
		}
		c.checkPosition(st)
		c.record(st, mod, ok, raw)
	}
	if !ok {
		return nil
	}
	c.checkRelative(st, mod, base)

	for _, a := range st.Names {
		if a.Name == "*" {
			continue
		}
		if err := c.addImported(ctx, st, joinName(mod.Name, a.Name)); err != nil {
			return err
		}
	}
	return nil
}

// trackPosition records the first statement after which module-scope
// imports are misplaced. Conditionals and try blocks holding imports are
// import fallbacks, not code.
func (c *Classifier) trackPosition(st *Statement) {
	if c.firstNonImport != nil {
		return
	}
	switch st.Kind {
	case KindIf, KindTry, KindTryFinally, KindAssign, KindAssignAttr, KindIfExp, KindComprehension:
		if st.Depth != 0 || st.ContainsImport {
			return
		}
	case KindFunctionDef, KindClassDef, KindFor, KindWhile:
		if st.Scope.Kind != ScopeModule {
			return
		}
		switch st.RootKind {
		case KindIf, KindTry, KindTryFinally:
			if st.RootContainsImport {
				return
			}
		}
	default:
		return
	}
	c.firstNonImport = st
}

// importModule resolves name for st. ok is false when the module could not
// be located; the import-error finding is emitted here.
func (c *Classifier) importModule(ctx context.Context, st *Statement, name string, level int) (resolve.Module, bool, error) {
	mod, err := c.s.resolver.Resolve(ctx, resolve.Request{
		Name:     name,
		Level:    level,
		Importer: c.importer,
		Implicit: !c.module.AbsoluteImport && level == 0,
	})
	if err == nil {
		return mod, true, nil
	}
	var ie *resolve.ImportError
	if !errors.As(err, &ie) {
		return resolve.Module{}, false, fmt.Errorf("resolve %s in %s: %w", name, c.module.Name, err)
	}

	dotted := name
	if level > 0 {
		if abs, err := resolve.AbsoluteName(c.importer, name, level); err == nil {
			dotted = abs
		}
	}
	arg := strconv.Quote(dotted)
	if reason := ie.Error(); reason != name {
		arg = fmt.Sprintf("%q (%s)", dotted, reason)
	}

	for _, prefix := range resolve.Prefixes(name) {
		if c.s.ignored[prefix] {
			return resolve.Module{}, false, nil
		}
	}
	if !st.ignoresImportError() {
		c.emit(st, ImportError, arg)
	}
	return resolve.Module{}, false, nil
}

// record pushes a module-scope import onto the ordering stack. Unresolved
// imports are recorded under the top-level component of the raw name.
func (c *Classifier) record(st *Statement, mod resolve.Module, ok bool, raw string) {
	name := mod.Name
	if !ok || name == "" {
		name = resolve.TopLevel(raw)
	}
	c.stack = append(c.stack, stackEntry{stmt: st, name: name})
}

func (c *Classifier) checkPosition(st *Statement) {
	if c.firstNonImport != nil {
		c.emit(st, WrongImportPosition, st.String())
	}
}

func (c *Classifier) checkMisplacedFuture(st *Statement, prev *Statement) {
	if st.Module != "__future__" || prev == nil {
		return
	}
	if prev.Kind == KindImportFrom && prev.Module == "__future__" {
		return
	}
	c.emit(st, MisplacedFuture)
}

func (c *Classifier) checkDeprecated(st *Statement, name string) {
	if name == "" {
		return
	}
	for _, dep := range c.s.cfg.DeprecatedModules {
		if name == dep || strings.HasPrefix(name, dep+".") {
			c.emit(st, DeprecatedModule, name)
		}
	}
}

func (c *Classifier) checkWildcard(st *Statement) {
	for _, a := range st.Names {
		if a.Name == "*" {
			c.emit(st, WildcardImport, st.Module)
		}
	}
}

// checkSameLine reports names listed twice in one statement.
func (c *Classifier) checkSameLine(st *Statement) {
	counts := make(map[string]int, len(st.Names))
	for _, a := range st.Names {
		counts[a.Name]++
	}
	for _, a := range st.Names {
		if counts[a.Name] > 1 {
			c.emit(st, Reimported, a.Name, strconv.Itoa(st.Line))
			counts[a.Name] = 0
		}
	}
}

func (c *Classifier) checkReimport(st *Statement, base string, level int) {
	if !c.s.enabled(Reimported) {
		return
	}
	for _, r := range c.reimport.Check(st, base, level) {
		c.emit(st, Reimported, r.Name, strconv.Itoa(r.First.Line))
	}
}

// checkRelative reports implicit relative imports: the module was found
// under a different name than the one written.
func (c *Classifier) checkRelative(st *Statement, mod resolve.Module, written string) {
	if !c.s.enabled(RelativeImport) {
		return
	}
	if mod.File == "" || mod.Name == c.module.Name {
		return
	}
	if c.module.AbsoluteImport || st.Level > 0 {
		return
	}
	if mod.Name != written {
		c.emit(st, RelativeImport, written, mod.Name)
	}
}

// addImported records a dependency of the module on name, or an
// import-self finding when name is the module itself.
func (c *Classifier) addImported(ctx context.Context, st *Statement, name string) error {
	// Relative imports in a package initializer never refer to the package.
	if st.Kind == KindImportFrom && st.Level > 0 && c.importer.IsPackage() {
		return nil
	}

	part, err := c.s.resolver.ModulePart(ctx, name, c.importer)
	var ie *resolve.ImportError
	switch {
	case err == nil:
		name = part
	case !errors.As(err, &ie):
		return fmt.Errorf("module part of %s: %w", name, err)
	}

	if name == c.module.Name {
		c.emit(st, ImportSelf)
		return nil
	}
	if c.s.resolver.IsStandard(name) {
		return nil
	}
	if err := c.s.graph.AddEdge(c.module.Name, name); err != nil {
		c.s.logger.Debug("dependency not recorded", "module", c.module.Name, "imported", name, "err", err)
	}
	return nil
}

func (c *Classifier) emit(st *Statement, k Kind, args ...string) {
	if !c.s.enabled(k) {
		return
	}
	f := newFinding(k, args...)
	f.Module = c.module.Name
	f.File = c.module.File
	if st != nil {
		f.Line = st.Line
		f.Statement = st.ID
	}
	c.findings = append(c.findings, f)
}

// Findings returns everything reported for the module so far.
func (c *Classifier) Findings() []Finding { return c.findings }
