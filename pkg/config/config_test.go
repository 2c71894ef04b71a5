package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/importlint/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if len(cfg.DeprecatedModules) != 1 || cfg.DeprecatedModules[0] != "optparse" {
		t.Errorf("DeprecatedModules = %v, want [optparse]", cfg.DeprecatedModules)
	}
	if cfg.Cache.TTL.Duration != DefaultCacheTTL {
		t.Errorf("Cache.TTL = %v, want %v", cfg.Cache.TTL, DefaultCacheTTL)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	// Defaults must not share the package-level slice.
	cfg.DeprecatedModules[0] = "changed"
	if DefaultDeprecatedModules[0] != "optparse" {
		t.Error("Default() aliases DefaultDeprecatedModules")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "importlint.toml")
	content := `
deprecated-modules = ["optparse", "imp"]
ignored-modules = ["numpy.core"]
disable = ["cyclic-import", "C0411"]
project = "app"
search-paths = ["src"]
ext-import-graph = "ext.dot"

[cache]
dir = "cache"
ttl = "1h"

[server]
addr = ":9000"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.DeprecatedModules) != 2 || cfg.DeprecatedModules[1] != "imp" {
		t.Errorf("DeprecatedModules = %v", cfg.DeprecatedModules)
	}
	if cfg.Project != "app" {
		t.Errorf("Project = %q, want app", cfg.Project)
	}
	if got, want := cfg.SearchPaths[0], filepath.Join(dir, "src"); got != want {
		t.Errorf("SearchPaths[0] = %q, want %q", got, want)
	}
	if got, want := cfg.Cache.Dir, filepath.Join(dir, "cache"); got != want {
		t.Errorf("Cache.Dir = %q, want %q", got, want)
	}
	if cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if !cfg.Disabled("cyclic-import", "R0401") || !cfg.Disabled("wrong-import-order", "C0411") {
		t.Error("Disabled() did not match configured entries")
	}
	if cfg.Disabled("reimported", "W0404") {
		t.Error("Disabled(reimported) = true")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadDefaultFileAbsent(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `deprecated-modules = [`},
		{"unknown key", `no-such-option = true`},
		{"bad duration", "[cache]\nttl = \"soon\""},
		{"empty module", `ignored-modules = [""]`},
		{"bad dotted name", `deprecated-modules = ["a..b"]`},
		{"duplicate graph path", "import-graph = \"g.dot\"\next-import-graph = \"g.dot\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestGraphOutputs(t *testing.T) {
	cfg := Default()
	if cfg.HasGraphOutput() {
		t.Error("HasGraphOutput() = true for defaults")
	}
	cfg.ImportGraph = "all.dot"
	cfg.IntImportGraph = "int.svg"
	got := cfg.GraphOutputs()
	if len(got) != 2 || got["import-graph"] != "all.dot" || got["int-import-graph"] != "int.svg" {
		t.Errorf("GraphOutputs() = %v", got)
	}
	if !cfg.HasGraphOutput() {
		t.Error("HasGraphOutput() = false")
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" os, ,sys ,")
	if len(got) != 2 || got[0] != "os" || got[1] != "sys" {
		t.Errorf("SplitList() = %v, want [os sys]", got)
	}
	if SplitList("") != nil {
		t.Error("SplitList(\"\") should be nil")
	}
}
