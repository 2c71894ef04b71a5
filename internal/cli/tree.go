package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/importlint/pkg/errors"
	"github.com/matzehuels/importlint/pkg/report"
)

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	var opts analysisOpts

	cmd := &cobra.Command{
		Use:   "tree <project-document>",
		Short: "Print the external dependencies of a project",
		Long: `Print the external modules a project depends on as a tree, each with the
project modules importing it.

Example:
  importlint tree project.json --package app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd.Context(), cmd, &opts, args[0])
		},
	}
	opts.register(cmd)
	return cmd
}

func (c *CLI) runTree(ctx context.Context, cmd *cobra.Command, opts *analysisOpts, path string) error {
	cfg, err := opts.config(cmd)
	if err != nil {
		return err
	}
	result, err := c.analyze(ctx, path, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tree, err := report.NewRenderer(nil, c.Logger).ExternalTree(result.Dependencies, result.Project)
	if errors.Is(err, errors.ErrCodeNothingToReport) {
		printInfo(out, "no external dependencies")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, tree)
	return nil
}
