package report

import "testing"

func TestRenderTree(t *testing.T) {
	deps := map[string][]string{
		"pkg.b": {"m2", "m1"},
		"pkg.a": {"m1"},
	}
	want := "pkg\n" +
		"  \\-a (m1)\n" +
		"  \\-b (m1,m2)"
	for i := 0; i < 10; i++ {
		if got := RenderTree(deps); got != want {
			t.Fatalf("RenderTree() =\n%s\nwant\n%s", got, want)
		}
	}
}

func TestRenderTree_Nested(t *testing.T) {
	deps := map[string][]string{
		"a.b.c":    {"x"},
		"a.d":      {"y"},
		"requests": {"app.views", "app.models"},
	}
	want := "a\n" +
		"  \\-b\n" +
		"  | \\-c (x)\n" +
		"  \\-d (y)\n" +
		"requests (app.models,app.views)"
	if got := RenderTree(deps); got != want {
		t.Errorf("RenderTree() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderTree_PackageAndSubmodule(t *testing.T) {
	deps := map[string][]string{
		"yaml":        {"app"},
		"yaml.loader": {"app.cfg"},
	}
	want := "yaml (app)\n" +
		"  \\-loader (app.cfg)"
	if got := RenderTree(deps); got != want {
		t.Errorf("RenderTree() =\n%s\nwant\n%s", got, want)
	}
}

func TestMakeTree_Empty(t *testing.T) {
	if !MakeTree(nil).Empty() {
		t.Error("Empty() = false for no deps")
	}
	if RenderTree(nil) != "" {
		t.Error("RenderTree(nil) should be empty")
	}
}
