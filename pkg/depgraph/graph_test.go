package depgraph

import (
	"errors"
	"reflect"
	"testing"
)

func TestAddEdge(t *testing.T) {
	g := New()
	if err := g.AddEdge("app", "lib"); err != nil {
		t.Fatalf("AddEdge() error: %v", err)
	}
	if err := g.AddEdge("app", "lib"); err != nil {
		t.Fatalf("AddEdge() duplicate error: %v", err)
	}

	if !g.HasEdge("app", "lib") {
		t.Error("HasEdge(app, lib) = false, want true")
	}
	if g.HasEdge("lib", "app") {
		t.Error("HasEdge(lib, app) = true, want false")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
}

func TestAddEdge_SelfEdge(t *testing.T) {
	g := New()
	err := g.AddEdge("pkg.mod", "pkg.mod")
	if !errors.Is(err, ErrSelfEdge) {
		t.Fatalf("AddEdge() error = %v, want ErrSelfEdge", err)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
	if len(g.Importers()) != 0 {
		t.Errorf("Importers() = %v, want empty", g.Importers())
	}
}

func TestAddEdge_InvalidName(t *testing.T) {
	g := New()
	for _, name := range []string{"", "pkg..mod", ".pkg", "1pkg", "pkg.*", "a-b"} {
		if err := g.AddEdge("app", name); !errors.Is(err, ErrInvalidModuleName) {
			t.Errorf("AddEdge(app, %q) error = %v, want ErrInvalidModuleName", name, err)
		}
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"os", true},
		{"os.path", true},
		{"__future__", true},
		{"pkg.sub_2.mod", true},
		{"", false},
		{"pkg.", false},
		{"pkg.2mod", false},
		{"pkg mod", false},
	}
	for _, tt := range tests {
		if got := ValidName(tt.name); got != tt.want {
			t.Errorf("ValidName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDependencies(t *testing.T) {
	g := New()
	_ = g.AddEdge("m2", "pkg.b")
	_ = g.AddEdge("m1", "pkg.b")
	_ = g.AddEdge("m1", "pkg.a")

	want := map[string][]string{
		"pkg.a": {"m1"},
		"pkg.b": {"m1", "m2"},
	}
	if got := g.Dependencies(); !reflect.DeepEqual(got, want) {
		t.Errorf("Dependencies() = %v, want %v", got, want)
	}
	if got := g.ImportedBy("pkg.b"); !reflect.DeepEqual(got, []string{"m1", "m2"}) {
		t.Errorf("ImportedBy(pkg.b) = %v", got)
	}
	if got := g.Imports("m1"); !reflect.DeepEqual(got, []string{"pkg.a", "pkg.b"}) {
		t.Errorf("Imports(m1) = %v", got)
	}
}

func TestMerge(t *testing.T) {
	a := New()
	_ = a.AddEdge("x", "y")
	b := New()
	_ = b.AddEdge("y", "z")
	_ = b.AddEdge("x", "y")

	a.Merge(b)

	if a.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", a.EdgeCount())
	}
	if !a.HasEdge("y", "z") {
		t.Error("merged edge y -> z missing")
	}
}
