package imports

import (
	"strings"
)

// StmtID identifies a statement within its module.
type StmtID int

// StmtKind tags the syntactic kind of a statement.
type StmtKind string

// Statement kinds. Kinds other than imports only matter for tracking the
// first non-import statement of a module; anything else is KindOther.
const (
	KindImport        StmtKind = "import"
	KindImportFrom    StmtKind = "importfrom"
	KindIf            StmtKind = "if"
	KindTry           StmtKind = "try"
	KindTryFinally    StmtKind = "tryfinally"
	KindAssign        StmtKind = "assign"
	KindAssignAttr    StmtKind = "assignattr"
	KindIfExp         StmtKind = "ifexp"
	KindComprehension StmtKind = "comprehension"
	KindFunctionDef   StmtKind = "functiondef"
	KindClassDef      StmtKind = "classdef"
	KindFor           StmtKind = "for"
	KindWhile         StmtKind = "while"
	KindOther         StmtKind = "other"
)

// IsImport reports whether k is one of the two import kinds.
func (k StmtKind) IsImport() bool {
	return k == KindImport || k == KindImportFrom
}

// ScopeKind tags a lexical scope.
type ScopeKind string

const (
	ScopeModule   ScopeKind = "module"
	ScopeFunction ScopeKind = "function"
	ScopeClass    ScopeKind = "class"
)

// Scope is the innermost function, class or module enclosing a statement.
// The module scope's ID is the module's qualified name.
type Scope struct {
	ID   string    `json:"id" yaml:"id"`
	Kind ScopeKind `json:"kind" yaml:"kind"`
}

// Alias is one imported name of an import statement.
type Alias struct {
	Name string `json:"name" yaml:"name"`
	As   string `json:"as,omitempty" yaml:"as,omitempty"`
}

// Statement is one statement of a module in source order.
//
// Body identifies the statement list directly containing the statement;
// direct children of a function, class or module share the body ID of that
// scope. Depth is 0 for direct children of the module body. RootKind and
// RootContainsImport describe the module-body statement the statement is
// nested in (the statement itself when Depth is 0).
type Statement struct {
	ID                 StmtID   `json:"id" yaml:"id"`
	Kind               StmtKind `json:"kind" yaml:"kind"`
	Line               int      `json:"line" yaml:"line"`
	Scope              Scope    `json:"scope" yaml:"scope"`
	Body               string   `json:"body,omitempty" yaml:"body,omitempty"`
	Depth              int      `json:"depth,omitempty" yaml:"depth,omitempty"`
	ContainsImport     bool     `json:"contains_import,omitempty" yaml:"contains_import,omitempty"`
	RootKind           StmtKind `json:"root_kind,omitempty" yaml:"root_kind,omitempty"`
	RootContainsImport bool     `json:"root_contains_import,omitempty" yaml:"root_contains_import,omitempty"`

	// Import payload.
	Names     []Alias  `json:"names,omitempty" yaml:"names,omitempty"`
	Module    string   `json:"module,omitempty" yaml:"module,omitempty"` // from-import base, without dots
	Level     int      `json:"level,omitempty" yaml:"level,omitempty"`   // leading dots of a from-import
	Text      string   `json:"text,omitempty" yaml:"text,omitempty"`
	GuardedBy []string `json:"guarded_by,omitempty" yaml:"guarded_by,omitempty"` // exception names of enclosing handlers; "" is a bare except
}

// String returns the source form of the statement.
func (s *Statement) String() string {
	if s.Text != "" {
		return s.Text
	}
	if !s.Kind.IsImport() {
		return string(s.Kind)
	}
	names := make([]string, len(s.Names))
	for i, a := range s.Names {
		names[i] = a.Name
		if a.As != "" {
			names[i] += " as " + a.As
		}
	}
	if s.Kind == KindImport {
		return "import " + strings.Join(names, ", ")
	}
	return "from " + strings.Repeat(".", s.Level) + s.Module + " import " + strings.Join(names, ", ")
}

// ignoresImportError reports whether the statement sits in a handler that
// catches import failures.
func (s *Statement) ignoresImportError() bool {
	for _, exc := range s.GuardedBy {
		switch exc {
		case "", "ImportError", "ModuleNotFoundError":
			return true
		}
	}
	return false
}

// Module is the front-end view of one source module.
type Module struct {
	Name           string      `json:"name" yaml:"name"`
	File           string      `json:"file,omitempty" yaml:"file,omitempty"`
	AbsoluteImport bool        `json:"absolute_import,omitempty" yaml:"absolute_import,omitempty"`
	Statements     []Statement `json:"statements" yaml:"statements"`
	Exclusive      [][2]StmtID `json:"exclusive,omitempty" yaml:"exclusive,omitempty"`

	// Oracle overrides Exclusive when set.
	Oracle Exclusivity `json:"-" yaml:"-"`
}

// normalize fills defaults the front end may omit.
func (m *Module) normalize() {
	for i := range m.Statements {
		s := &m.Statements[i]
		if s.Scope.Kind == "" {
			s.Scope.Kind = ScopeModule
		}
		if s.Scope.ID == "" && s.Scope.Kind == ScopeModule {
			s.Scope.ID = m.Name
		}
		if s.Body == "" {
			s.Body = s.Scope.ID
		}
		if s.Depth == 0 && s.RootKind == "" {
			s.RootKind = s.Kind
			s.RootContainsImport = s.ContainsImport
		}
	}
}

// exclusivity returns the oracle of the module.
func (m *Module) exclusivity() Exclusivity {
	if m.Oracle != nil {
		return m.Oracle
	}
	return NewExclusivePairs(m.Exclusive...)
}
