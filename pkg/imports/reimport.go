package imports

// ReimportDetector finds earlier imports of the same name on an execution
// path shared with a new import.
//
// Two contexts are searched: the body of the scope enclosing the import,
// restricted to statements not after it, and, for imports inside a
// function or class, the module body in full.
type ReimportDetector struct {
	root   string
	bodies map[string][]*Statement
	pos    map[StmtID]int // source order of every statement
	excl   Exclusivity
}

// Reimport is one duplicate found by the detector.
type Reimport struct {
	Name  string
	First *Statement
}

// NewReimportDetector indexes the import statements of m by body.
func NewReimportDetector(m *Module, excl Exclusivity) *ReimportDetector {
	if excl == nil {
		excl = NeverExclusive{}
	}
	d := &ReimportDetector{
		root:   m.Name,
		bodies: make(map[string][]*Statement),
		pos:    make(map[StmtID]int, len(m.Statements)),
		excl:   excl,
	}
	for i := range m.Statements {
		s := &m.Statements[i]
		d.pos[s.ID] = i
		if s.Kind.IsImport() {
			d.bodies[s.Body] = append(d.bodies[s.Body], s)
		}
	}
	return d
}

// Check returns the earlier imports that node duplicates. base and level
// are the from-import base module and level, empty and 0 for plain imports.
func (d *ReimportDetector) Check(node *Statement, base string, level int) []Reimport {
	type searchContext struct {
		body  string
		level int
	}
	contexts := []searchContext{{node.Scope.ID, level}}
	if node.Scope.ID != d.root {
		contexts = append(contexts, searchContext{d.root, 0})
	}

	var out []Reimport
	for _, c := range contexts {
		for _, alias := range node.Names {
			first := d.firstImport(node, c.body, alias, base, c.level)
			if first != nil {
				out = append(out, Reimport{Name: alias.Name, First: first})
			}
		}
	}
	return out
}

// firstImport returns the earliest statement of body importing
// [base.]alias.Name, or nil when there is none or it is exclusive with node.
func (d *ReimportDetector) firstImport(node *Statement, body string, alias Alias, base string, level int) *Statement {
	fullname := joinName(base, alias.Name)
	for _, first := range d.bodies[body] {
		if first == node || first.ID == node.ID {
			continue
		}
		if first.Scope.ID == node.Scope.ID && !d.precedes(first, node) {
			continue
		}
		if !matches(first, fullname, alias, level) {
			continue
		}
		if d.excl.AreExclusive(first.ID, node.ID) {
			return nil
		}
		return first
	}
	return nil
}

// precedes reports whether a comes before b in the module. Statements
// sharing a line are ordered by their position in the statement stream.
func (d *ReimportDetector) precedes(a, b *Statement) bool {
	i, okA := d.pos[a.ID]
	j, okB := d.pos[b.ID]
	if okA && okB {
		return i < j
	}
	return a.Line <= b.Line
}

func matches(first *Statement, fullname string, alias Alias, level int) bool {
	switch first.Kind {
	case KindImport:
		for _, a := range first.Names {
			if a.Name == fullname {
				return true
			}
		}
	case KindImportFrom:
		if first.Level != level {
			return false
		}
		for _, a := range first.Names {
			if joinName(first.Module, a.Name) == fullname {
				return true
			}
			if alias.Name != "*" && alias.Name == a.Name && alias.As == "" && a.As == "" {
				return true
			}
		}
	}
	return false
}

func joinName(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}
