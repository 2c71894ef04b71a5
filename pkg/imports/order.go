package imports

import (
	"context"
	"errors"

	"github.com/matzehuels/importlint/pkg/resolve"
)

// ErrClassifierDone is returned when a finished classifier is used again.
var ErrClassifierDone = errors.New("classifier already finished")

// categorized is a stack entry reduced to its top-level package.
type categorized struct {
	stmt *Statement
	pkg  string
}

// Finish runs the ordering and grouping checks of the module and releases
// its ordering state.
func (c *Classifier) Finish(ctx context.Context) ([]Finding, error) {
	if c.done {
		return nil, ErrClassifierDone
	}
	c.done = true
	start := len(c.findings)

	std, ext, loc, err := c.checkOrder(ctx)
	if err != nil {
		return c.findings[start:], err
	}

	// Within the category order, each package must form one run.
	met := make(map[string]bool)
	current := ""
	for _, group := range [][]categorized{std, ext, loc} {
		for _, e := range group {
			if current != "" && current != e.pkg && met[e.pkg] {
				c.emit(e.stmt, UngroupedImports, e.pkg)
			}
			current = e.pkg
			met[e.pkg] = true
		}
	}

	c.stack = nil
	c.firstNonImport = nil
	return c.findings[start:], nil
}

// checkOrder partitions the module's imports into standard, external and
// local, reporting standard imports after external or local ones and
// external imports after local ones. Each violation cites the first
// import of the category it should have preceded. Imports whose package
// cannot be located are left out.
func (c *Classifier) checkOrder(ctx context.Context) (std, ext, loc []categorized, err error) {
	for _, e := range c.stack {
		cat, err := c.s.categories.Categorize(ctx, e.name)
		if err != nil {
			return std, ext, loc, err
		}
		entry := categorized{stmt: e.stmt, pkg: resolve.TopLevel(e.name)}

		switch cat {
		case Standard:
			std = append(std, entry)
			wrong := ext
			if len(wrong) == 0 {
				wrong = loc
			}
			if len(wrong) == 0 || c.isFallback(e.stmt, wrong) {
				continue
			}
			c.emit(e.stmt, WrongImportOrder,
				`standard import "`+e.stmt.String()+`"`,
				`"`+wrong[0].stmt.String()+`"`)
		case External:
			ext = append(ext, entry)
			if len(loc) == 0 || c.isFallback(e.stmt, loc) {
				continue
			}
			c.emit(e.stmt, WrongImportOrder,
				`external import "`+e.stmt.String()+`"`,
				`"`+loc[0].stmt.String()+`"`)
		case Local:
			loc = append(loc, entry)
		}
	}
	return std, ext, loc, nil
}

// isFallback reports whether st is exclusive with any of the prior imports.
func (c *Classifier) isFallback(st *Statement, prior []categorized) bool {
	for _, p := range prior {
		if c.excl.AreExclusive(p.stmt.ID, st.ID) {
			return true
		}
	}
	return false
}
