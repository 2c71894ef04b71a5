// Package config holds the options of an import analysis run.
//
// Options are read from a TOML file (importlint.toml by default) and may be
// overridden by command-line flags. The same [Config] drives the CLI, the
// HTTP server and library callers of the pipeline.
//
// # File Format
//
//	deprecated-modules = ["optparse", "imp"]
//	ignored-modules    = ["numpy.core"]
//	disable            = ["cyclic-import"]
//	project            = "app"
//	search-paths       = ["src"]
//	site-packages      = [".venv/lib/python3.12/site-packages"]
//	ext-import-graph   = "deps-external.svg"
//
//	[cache]
//	dir = ".importlint-cache"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/importlint/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFile is the config file looked up in the working directory.
	DefaultFile = "importlint.toml"

	// DefaultCacheTTL is how long persisted resolutions stay valid.
	DefaultCacheTTL = 7 * 24 * time.Hour

	// DefaultAddr is the listen address of the HTTP server.
	DefaultAddr = ":8080"
)

// DefaultDeprecatedModules lists the modules reported by deprecated-module
// when no list is configured.
var DefaultDeprecatedModules = []string{"optparse"}

// =============================================================================
// Config
// =============================================================================

// Config contains all options of an analysis run.
type Config struct {
	DeprecatedModules []string `toml:"deprecated-modules" json:"deprecated_modules,omitempty"`
	IgnoredModules    []string `toml:"ignored-modules" json:"ignored_modules,omitempty"`
	ImportGraph       string   `toml:"import-graph" json:"import_graph,omitempty"`
	ExtImportGraph    string   `toml:"ext-import-graph" json:"ext_import_graph,omitempty"`
	IntImportGraph    string   `toml:"int-import-graph" json:"int_import_graph,omitempty"`
	Disable           []string `toml:"disable" json:"disable,omitempty"`

	// Project is the root package of the analyzed code. Modules below it are
	// internal; everything else recorded in the dependency map is external.
	Project string `toml:"project" json:"project,omitempty"`

	SearchPaths     []string `toml:"search-paths" json:"search_paths,omitempty"`
	SitePackages    []string `toml:"site-packages" json:"site_packages,omitempty"`
	StandardModules []string `toml:"standard-modules" json:"standard_modules,omitempty"`

	Cache  CacheConfig  `toml:"cache" json:"-"`
	Server ServerConfig `toml:"server" json:"-"`
}

// CacheConfig selects the resolution cache backend.
type CacheConfig struct {
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis-url"`
	TTL      Duration `toml:"ttl"`
	Disabled bool     `toml:"disabled"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string ("24h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DeprecatedModules: append([]string(nil), DefaultDeprecatedModules...),
		Cache:             CacheConfig{TTL: Duration{DefaultCacheTTL}},
		Server:            ServerConfig{Addr: DefaultAddr},
	}
}

// Load reads a TOML file on top of the defaults. A missing file at
// DefaultFile is not an error; a missing explicitly named file is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, cfg.Validate()
}

// Decode parses TOML data into cfg, keeping values the data does not set.
// Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown option(s): %s", strings.Join(keys, ", "))
	}
	return nil
}

// resolvePaths makes relative directories in the file relative to the file.
func (c *Config) resolvePaths(base string) {
	for _, list := range [][]string{c.SearchPaths, c.SitePackages} {
		for i, p := range list {
			if p != "" && !filepath.IsAbs(p) {
				list[i] = filepath.Join(base, p)
			}
		}
	}
	if c.Cache.Dir != "" && !filepath.IsAbs(c.Cache.Dir) {
		c.Cache.Dir = filepath.Join(base, c.Cache.Dir)
	}
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks module name lists and graph outputs.
func (c *Config) Validate() error {
	lists := []struct {
		option string
		names  []string
	}{
		{"deprecated-modules", c.DeprecatedModules},
		{"ignored-modules", c.IgnoredModules},
		{"standard-modules", c.StandardModules},
	}
	for _, l := range lists {
		for _, name := range l.names {
			if !validDotted(name) {
				return errors.New(errors.ErrCodeInvalidConfig, "%s: invalid module name %q", l.option, name)
			}
		}
	}
	if c.Project != "" && !validDotted(c.Project) {
		return errors.New(errors.ErrCodeInvalidConfig, "project: invalid module name %q", c.Project)
	}
	for _, d := range c.Disable {
		if strings.TrimSpace(d) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "disable: empty entry")
		}
	}

	seen := map[string]string{}
	for option, path := range c.GraphOutputs() {
		clean := filepath.Clean(path)
		if other, ok := seen[clean]; ok {
			return errors.New(errors.ErrCodeInvalidConfig, "%s and %s both write %s", other, option, path)
		}
		seen[clean] = option
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// validDotted accepts non-empty dot-separated names without empty segments.
func validDotted(name string) bool {
	if name == "" {
		return false
	}
	for _, part := range strings.Split(name, ".") {
		if part == "" || strings.ContainsAny(part, " \t/\\") {
			return false
		}
	}
	return true
}

// GraphOutputs returns the configured graph files keyed by option name.
func (c *Config) GraphOutputs() map[string]string {
	out := map[string]string{}
	if c.ImportGraph != "" {
		out["import-graph"] = c.ImportGraph
	}
	if c.ExtImportGraph != "" {
		out["ext-import-graph"] = c.ExtImportGraph
	}
	if c.IntImportGraph != "" {
		out["int-import-graph"] = c.IntImportGraph
	}
	return out
}

// HasGraphOutput reports whether any graph file is configured.
func (c *Config) HasGraphOutput() bool {
	return c.ImportGraph != "" || c.ExtImportGraph != "" || c.IntImportGraph != ""
}

// Disabled reports whether a finding, given by name or id, is switched off.
// Matching is case-insensitive.
func (c *Config) Disabled(name, id string) bool {
	for _, d := range c.Disable {
		d = strings.TrimSpace(d)
		if strings.EqualFold(d, name) || (id != "" && strings.EqualFold(d, id)) {
			return true
		}
	}
	return false
}

// SplitList parses a comma separated flag value, dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
