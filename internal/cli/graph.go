package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/importlint/pkg/errors"
	"github.com/matzehuels/importlint/pkg/report"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	analysisOpts
	output string
	scope  string
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{scope: string(report.ScopeAll)}

	cmd := &cobra.Command{
		Use:   "graph <project-document>",
		Short: "Write the dependency graph of a project",
		Long: `Write the module dependency graph of a project document.

The output extension selects the format: .dot and .gv write the graph
description, .svg, .png and .jpg render it with Graphviz.

Examples:
  importlint graph project.json -o deps.dot
  importlint graph project.json -o external.svg --scope external --package app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), cmd, &opts, args[0])
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (required)")
	cmd.Flags().StringVar(&opts.scope, "scope", opts.scope, "modules to draw: all, external or internal")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, cmd *cobra.Command, opts *graphOpts, path string) error {
	scope := report.Scope(opts.scope)
	switch scope {
	case report.ScopeAll, report.ScopeExternal, report.ScopeInternal:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown scope %q (use all, external or internal)", opts.scope)
	}
	cfg, err := opts.config(cmd)
	if err != nil {
		return err
	}
	result, err := c.analyze(ctx, path, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	deps := report.Select(result.Dependencies, result.Project, scope)
	if len(deps) == 0 {
		printInfo(out, "no %s dependencies to draw", scope)
		return nil
	}
	para, err := report.NewRenderer(nil, c.Logger).WriteGraph(ctx, opts.output, result.Dependencies, result.Project, scope)
	if err != nil {
		return err
	}
	printSuccess(out, "%s", para)
	return nil
}
