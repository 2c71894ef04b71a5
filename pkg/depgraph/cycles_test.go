package depgraph

import (
	"math/rand/v2"
	"reflect"
	"slices"
	"testing"
)

func build(edges ...[2]string) *Graph {
	g := New()
	for _, e := range edges {
		_ = g.AddEdge(e[0], e[1])
	}
	return g
}

func TestCycles_Acyclic(t *testing.T) {
	tests := []struct {
		name  string
		edges [][2]string
	}{
		{"empty", nil},
		{"chain", [][2]string{{"a", "b"}, {"b", "c"}}},
		{"diamond", [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}},
		{"forest", [][2]string{{"a", "b"}, {"x", "y"}, {"y", "z"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := build(tt.edges...).Cycles(); len(got) != 0 {
				t.Errorf("Cycles() = %v, want none", got)
			}
		})
	}
}

func TestCycles_Triangle(t *testing.T) {
	// Identical cycle regardless of vertex naming, so the search order differs.
	tests := []struct {
		name  string
		edges [][2]string
		want  Cycle
	}{
		{"from a", [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, Cycle{"a", "b", "c"}},
		{"from b", [][2]string{{"b", "c"}, {"c", "a"}, {"a", "b"}}, Cycle{"a", "b", "c"}},
		{"entered midway", [][2]string{{"root", "c"}, {"a", "b"}, {"b", "c"}, {"c", "a"}}, Cycle{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := build(tt.edges...).Cycles()
			if len(got) != 1 {
				t.Fatalf("Cycles() = %v, want exactly one", got)
			}
			if !reflect.DeepEqual(got[0], tt.want) {
				t.Errorf("Cycles()[0] = %v, want %v", got[0], tt.want)
			}
		})
	}
}

func TestCycles_TwoCycles(t *testing.T) {
	g := build(
		[2]string{"a", "b"}, [2]string{"b", "a"},
		[2]string{"c", "d"}, [2]string{"d", "c"},
	)
	got := g.Cycles()
	want := []Cycle{{"a", "b"}, {"c", "d"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Cycles() = %v, want %v", got, want)
	}
}

func TestCycles_SharedVertex(t *testing.T) {
	// Two elementary cycles through hub: hub <-> a and hub <-> b.
	g := build(
		[2]string{"hub", "a"}, [2]string{"a", "hub"},
		[2]string{"hub", "b"}, [2]string{"b", "hub"},
	)
	got := g.Cycles()
	want := []Cycle{{"a", "hub"}, {"b", "hub"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Cycles() = %v, want %v", got, want)
	}
}

func TestCycles_ThroughExploredModule(t *testing.T) {
	// m0 -> m2 -> m4 -> m3 -> m1 -> m0 passes through m4 and m3 after both
	// were already explored from m0 on other branches.
	g := build(
		[2]string{"m0", "m2"}, [2]string{"m0", "m4"},
		[2]string{"m1", "m0"}, [2]string{"m1", "m4"},
		[2]string{"m2", "m3"}, [2]string{"m2", "m4"},
		[2]string{"m3", "m1"}, [2]string{"m3", "m4"},
		[2]string{"m4", "m1"}, [2]string{"m4", "m3"},
	)
	got := g.Cycles()
	want := []Cycle{
		{"m0", "m2", "m3", "m1"},
		{"m0", "m2", "m3", "m4", "m1"},
		{"m0", "m2", "m4", "m1"},
		{"m0", "m2", "m4", "m3", "m1"},
		{"m0", "m4", "m1"},
		{"m0", "m4", "m3", "m1"},
		{"m1", "m4"},
		{"m1", "m4", "m3"},
		{"m3", "m4"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Cycles() = %v, want %v", got, want)
	}
}

// allCycles lists the elementary cycles of g by trying every sequence of
// distinct modules, keeping each cycle once in canonical rotation.
func allCycles(g *Graph, modules []string) map[string]bool {
	out := make(map[string]bool)
	var extend func(seq []string, used map[string]bool)
	extend = func(seq []string, used map[string]bool) {
		if len(seq) > 1 && g.HasEdge(seq[len(seq)-1], seq[0]) {
			out[Cycle(slices.Clone(seq)).canonical().String()] = true
		}
		for _, m := range modules {
			if used[m] || !g.HasEdge(seq[len(seq)-1], m) {
				continue
			}
			used[m] = true
			extend(append(seq, m), used)
			delete(used, m)
		}
	}
	for _, m := range modules {
		extend([]string{m}, map[string]bool{m: true})
	}
	return out
}

func TestCycles_MatchesExhaustiveSearch(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	modules := []string{"m0", "m1", "m2", "m3", "m4", "m5"}
	for round := 0; round < 200; round++ {
		g := New()
		for _, from := range modules {
			for _, to := range modules {
				if from != to && rng.IntN(3) == 0 {
					_ = g.AddEdge(from, to)
				}
			}
		}
		want := allCycles(g, modules)
		got := make(map[string]bool)
		for _, c := range g.Cycles() {
			key := c.String()
			if got[key] {
				t.Fatalf("round %d: cycle %s reported twice", round, key)
			}
			if c.canonical().String() != key {
				t.Errorf("round %d: cycle %s not in canonical rotation", round, key)
			}
			got[key] = true
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("round %d: found %d of %d cycles\n got: %v\nwant: %v",
				round, len(got), len(want), keys(got), keys(want))
		}
	}
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func TestCycle_String(t *testing.T) {
	c := Cycle{"pkg.a", "pkg.b", "pkg.c"}
	if got := c.String(); got != "pkg.a -> pkg.b -> pkg.c" {
		t.Errorf("String() = %q", got)
	}
}

func TestCycle_Canonical(t *testing.T) {
	c := Cycle{"c", "a", "b"}
	if got := c.canonical(); !reflect.DeepEqual(got, Cycle{"a", "b", "c"}) {
		t.Errorf("canonical() = %v", got)
	}
	if got := (Cycle{}).canonical(); len(got) != 0 {
		t.Errorf("canonical() of empty = %v", got)
	}
}
