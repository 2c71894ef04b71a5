package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/importlint/pkg/errors"
	pkgio "github.com/matzehuels/importlint/pkg/io"
	"github.com/matzehuels/importlint/pkg/observability"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	analysisOpts
	format      string // text or json
	browse      bool   // open the interactive browser
	importGraph string
	extGraph    string
	intGraph    string
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	opts := checkOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "check <project-document>",
		Short: "Report import findings for a project",
		Long: `Analyze the modules of a project document and report import findings.

The document is JSON or YAML (by extension) as written by a source front end.
The exit status is 2 when there are findings.

Examples:
  importlint check project.json
  importlint check project.yaml --disable cyclic-import,C0411
  importlint check project.json --format json > results.json
  importlint check project.json --ext-import-graph deps.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), cmd, &opts, args[0])
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text or json")
	cmd.Flags().BoolVar(&opts.browse, "browse", false, "browse findings interactively")
	cmd.Flags().StringVar(&opts.importGraph, "import-graph", "", "write the full dependency graph to this file")
	cmd.Flags().StringVar(&opts.extGraph, "ext-import-graph", "", "write the external dependency graph to this file")
	cmd.Flags().StringVar(&opts.intGraph, "int-import-graph", "", "write the internal dependency graph to this file")

	return cmd
}

func (c *CLI) runCheck(ctx context.Context, cmd *cobra.Command, opts *checkOpts, path string) error {
	if opts.format != formatText && opts.format != formatJSON {
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (use text or json)", opts.format)
	}
	cfg, err := opts.config(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("import-graph") {
		cfg.ImportGraph = opts.importGraph
	}
	if cmd.Flags().Changed("ext-import-graph") {
		cfg.ExtImportGraph = opts.extGraph
	}
	if cmd.Flags().Changed("int-import-graph") {
		cfg.IntImportGraph = opts.intGraph
	}

	project, err := pkgio.ImportProject(path)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	var spinner *Spinner
	if opts.format == formatText && !opts.browse {
		spinner = newSpinner(ctx, cmd.ErrOrStderr(), "Analyzing...")
		observability.SetPipelineHooks(&spinnerHooks{spinner: spinner})
		defer observability.SetPipelineHooks(observability.NoopPipelineHooks{})
		spinner.Start()
	}
	result, runErr := runner.Execute(ctx, project, cfg)
	if spinner != nil {
		spinner.Stop()
	}
	if result == nil {
		return runErr
	}
	prog.done(fmt.Sprintf("Analyzed %d modules", result.Stats.Modules))

	out := cmd.OutOrStdout()
	switch {
	case opts.browse:
		if err := browseFindings(result.Findings); err != nil {
			return fmt.Errorf("browse: %w", err)
		}
	case opts.format == formatJSON:
		if err := pkgio.WriteJSON(result, out); err != nil {
			return err
		}
	default:
		printFindings(out, result.Findings)
		printSummary(out, result)
	}

	if runErr != nil {
		return runErr
	}
	if result.HasFindings() {
		return ErrFindings
	}
	return nil
}
