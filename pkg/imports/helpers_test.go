package imports

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/importlint/pkg/config"
	"github.com/matzehuels/importlint/pkg/resolve"
)

func testEntries() map[string]resolve.Entry {
	return map[string]resolve.Entry{
		"requests":          {File: "/site/requests/__init__.py"},
		"requests.adapters": {File: "/site/requests/adapters.py"},
		"six":               {File: "/site/six.py"},
		"app":               {File: "/src/app/__init__.py"},
		"app.views":         {File: "/src/app/views.py"},
		"app.models":        {File: "/src/app/models.py"},
		"app.utils":         {File: "/src/app/utils.py"},
		"pkg":               {File: "/src/pkg/__init__.py"},
		"pkg.a":             {File: "/src/pkg/a.py"},
		"pkg.b":             {File: "/src/pkg/b.py"},
		"other":             {File: "/src/other.py"},
		"missing":           {Error: "No module named missing"},
	}
}

func testResolver() resolve.Resolver {
	return resolve.NewTableResolver(testEntries(), nil)
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.SitePackages = []string{"/site"}
	return cfg
}

func newTestSession(cfg config.Config) *Session {
	return NewSession(cfg, testResolver(), log.New(io.Discard))
}

// aliases parses "name" and "name as alias" entries.
func aliases(names ...string) []Alias {
	out := make([]Alias, len(names))
	for i, n := range names {
		name, as, _ := strings.Cut(n, " as ")
		out[i] = Alias{Name: name, As: as}
	}
	return out
}

func imp(id StmtID, line int, names ...string) Statement {
	return Statement{ID: id, Kind: KindImport, Line: line, Names: aliases(names...)}
}

func from(id StmtID, line int, module string, level int, names ...string) Statement {
	return Statement{ID: id, Kind: KindImportFrom, Line: line, Module: module, Level: level, Names: aliases(names...)}
}

func stmt(id StmtID, line int, kind StmtKind) Statement {
	return Statement{ID: id, Kind: kind, Line: line}
}

// nested places s inside the body of a function, class or block.
func nested(s Statement, scope Scope, body string, depth int) Statement {
	s.Scope = scope
	s.Body = body
	s.Depth = depth
	return s
}

func module(name string, stmts ...Statement) *Module {
	file := "/src/" + strings.ReplaceAll(name, ".", "/") + ".py"
	return &Module{Name: name, File: file, Statements: stmts}
}

func analyze(t *testing.T, cfg config.Config, m *Module) []Finding {
	t.Helper()
	fs, err := newTestSession(cfg).AnalyzeModule(context.Background(), m)
	if err != nil {
		t.Fatalf("AnalyzeModule() error = %v", err)
	}
	return fs
}

func symbols(fs []Finding) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Symbol
	}
	return out
}

func only(t *testing.T, fs []Finding, symbol string) Finding {
	t.Helper()
	if len(fs) != 1 || fs[0].Symbol != symbol {
		t.Fatalf("findings = %v, want exactly one %s", symbols(fs), symbol)
	}
	return fs[0]
}

func none(t *testing.T, fs []Finding) {
	t.Helper()
	if len(fs) != 0 {
		t.Fatalf("findings = %v, want none", fs)
	}
}
