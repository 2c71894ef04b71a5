package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/importlint/pkg/config"
	pkgio "github.com/matzehuels/importlint/pkg/io"
	"github.com/matzehuels/importlint/pkg/pipeline"
)

// analysisOpts holds the flags shared by every command that runs the
// analysis. Flags override the config file only when they are set.
type analysisOpts struct {
	configPath   string
	pkg          string
	deprecated   string
	ignored      string
	disable      string
	searchPaths  string
	sitePackages string
	noCache      bool
	redisURL     string
}

func (o *analysisOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")
	f.StringVar(&o.pkg, "package", "", "root package of the project; modules below it are internal")
	f.StringVar(&o.deprecated, "deprecated", "", "comma-separated deprecated modules")
	f.StringVar(&o.ignored, "ignored", "", "comma-separated modules whose import errors are ignored")
	f.StringVar(&o.disable, "disable", "", "comma-separated finding names or ids to switch off")
	f.StringVar(&o.searchPaths, "search-paths", "", "comma-separated module search paths")
	f.StringVar(&o.sitePackages, "site-packages", "", "comma-separated third-party package directories")
	f.BoolVar(&o.noCache, "no-cache", false, "disable the resolution cache")
	f.StringVar(&o.redisURL, "redis", "", "share the resolution cache through Redis (redis://host:port/db)")
}

// config loads the config file and applies the flags that were set.
func (o *analysisOpts) config(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	changed := cmd.Flags().Changed
	if changed("package") {
		cfg.Project = o.pkg
	}
	if changed("deprecated") {
		cfg.DeprecatedModules = config.SplitList(o.deprecated)
	}
	if changed("ignored") {
		cfg.IgnoredModules = config.SplitList(o.ignored)
	}
	if changed("disable") {
		cfg.Disable = config.SplitList(o.disable)
	}
	if changed("search-paths") {
		cfg.SearchPaths = config.SplitList(o.searchPaths)
	}
	if changed("site-packages") {
		cfg.SitePackages = config.SplitList(o.sitePackages)
	}
	if o.noCache {
		cfg.Cache.Disabled = true
	}
	if o.redisURL != "" {
		cfg.Cache.RedisURL = o.redisURL
	}
	return cfg, cfg.Validate()
}

// analyze loads the document at path and runs the analysis stage.
func (c *CLI) analyze(ctx context.Context, path string, cfg config.Config) (*pipeline.Result, error) {
	project, err := pkgio.ImportProject(path)
	if err != nil {
		return nil, err
	}
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	defer runner.Close()

	if cfg.Project == "" {
		cfg.Project = project.Project
	}
	return runner.Analyze(ctx, project, cfg)
}
