package imports

import (
	"fmt"
	"sort"
	"strings"
)

// Kind describes one class of finding.
type Kind struct {
	ID       string // message id, e.g. "W0404"
	Name     string // symbolic name, e.g. "reimported"
	Template string // fmt template applied to the finding's arguments
	Help     string
}

// Severity returns the severity encoded in the id's first letter.
func (k Kind) Severity() Severity {
	if k.ID == "" {
		return SeverityConvention
	}
	switch k.ID[0] {
	case 'E':
		return SeverityError
	case 'R':
		return SeverityRefactor
	case 'W':
		return SeverityWarning
	default:
		return SeverityConvention
	}
}

// Severity orders findings by how serious they are.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeverityRefactor   Severity = "refactor"
	SeverityConvention Severity = "convention"
)

// Finding kinds.
var (
	ImportError = Kind{"E0401", "import-error", "Unable to import %s",
		"A module could not be located."}
	CyclicImport = Kind{"R0401", "cyclic-import", "Cyclic import (%s)",
		"Two or more modules import each other, directly or indirectly."}
	WildcardImport = Kind{"W0401", "wildcard-import", "Wildcard import %s",
		"`from module import *` is used."}
	DeprecatedModule = Kind{"W0402", "deprecated-module", "Uses of a deprecated module %q",
		"A module marked as deprecated is imported."}
	RelativeImport = Kind{"W0403", "relative-import", "Relative import %q, should be %q",
		"An import relative to the package directory is used without explicit dots."}
	Reimported = Kind{"W0404", "reimported", "Reimport %q (imported line %s)",
		"A name is imported again on an execution path that already imported it."}
	ImportSelf = Kind{"W0406", "import-self", "Module import itself",
		"A module imports itself."}
	MisplacedFuture = Kind{"W0410", "misplaced-future", "__future__ import is not the first non docstring statement",
		"__future__ imports must come first in the module."}
	MultipleImports = Kind{"C0410", "multiple-imports", "Multiple imports on one line (%s)",
		"One import statement names several modules."}
	WrongImportOrder = Kind{"C0411", "wrong-import-order", "%s comes before %s",
		"Standard imports must come first, then third-party libraries, then local imports."}
	UngroupedImports = Kind{"C0412", "ungrouped-imports", "Imports from package %s are not grouped",
		"Imports of one package are interleaved with imports of another."}
	WrongImportPosition = Kind{"C0413", "wrong-import-position", "Import \"%s\" should be placed at the top of the module",
		"Code and imports are mixed."}
)

// Kinds lists every finding kind in id order.
var Kinds = []Kind{
	ImportError, CyclicImport, WildcardImport, DeprecatedModule, RelativeImport,
	Reimported, ImportSelf, MisplacedFuture, MultipleImports, WrongImportOrder,
	UngroupedImports, WrongImportPosition,
}

// LookupKind finds a kind by symbolic name or id, ignoring case.
func LookupKind(nameOrID string) (Kind, bool) {
	for _, k := range Kinds {
		if strings.EqualFold(k.Name, nameOrID) || strings.EqualFold(k.ID, nameOrID) {
			return k, true
		}
	}
	return Kind{}, false
}

// Finding is one reported problem.
type Finding struct {
	ID        string   `json:"id"`
	Symbol    string   `json:"symbol"`
	Severity  Severity `json:"severity"`
	Module    string   `json:"module"`
	File      string   `json:"file,omitempty"`
	Line      int      `json:"line,omitempty"`
	Statement StmtID   `json:"statement,omitempty"`
	Args      []string `json:"args,omitempty"`
	Message   string   `json:"message"`
}

func newFinding(k Kind, args ...string) Finding {
	vals := make([]any, len(args))
	for i, a := range args {
		vals[i] = a
	}
	msg := k.Template
	if len(vals) > 0 {
		msg = fmt.Sprintf(k.Template, vals...)
	}
	return Finding{
		ID:       k.ID,
		Symbol:   k.Name,
		Severity: k.Severity(),
		Args:     args,
		Message:  msg,
	}
}

// String formats the finding the way linters print it.
func (f Finding) String() string {
	loc := f.Module
	if f.File != "" {
		loc = f.File
	}
	if f.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, f.Line)
	}
	return fmt.Sprintf("%s: %s: %s (%s)", loc, f.ID, f.Message, f.Symbol)
}

// SortFindings orders findings by module, line, then id.
func SortFindings(fs []Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		a, b := fs[i], fs[j]
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.ID < b.ID
	})
}

// CountBySymbol tallies findings per symbolic name.
func CountBySymbol(fs []Finding) map[string]int {
	out := make(map[string]int)
	for _, f := range fs {
		out[f.Symbol]++
	}
	return out
}
