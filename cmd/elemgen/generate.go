package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/elemgen/internal/engine"
)

var generateCmdRunner = runGenerate

func newGenerateCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Clean and regenerate every registration module and the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateCmdRunner(cmd, root)
		},
	}

	cmd.Flags().BoolVar(&root.dryRun, "dry-run", false, "Print the files that would be written without touching the source tree")

	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootFlags) error {
	ctrl, _, err := root.controller(cmd, "generate")
	if err != nil {
		return err
	}

	if root.dryRun {
		plan, err := ctrl.Build()
		if err != nil {
			return newCommandError("generate", "planning "+ctrl.Root(), err, generateSuggestion(err))
		}
		renderPlan(cmd, root, plan)
		return nil
	}

	summary, err := ctrl.Run()
	if err != nil {
		return newCommandError("generate", "regenerating "+ctrl.Root(), err, generateSuggestion(err))
	}

	renderSummary(cmd, root, summary)
	return nil
}

func renderSummary(cmd *cobra.Command, root *rootFlags, summary *engine.Summary) {
	out := cmd.OutOrStdout()
	s := newStyles(out, root.noColor)

	fmt.Fprintln(out, s.ok(fmt.Sprintf(
		"Generated %s for %s (scanned %s, removed %s) in %s",
		plural(summary.Generated, "module", "modules"),
		plural(summary.Components, "component", "components"),
		plural(summary.FilesScanned, "file", "files"),
		plural(summary.Removed, "stale file", "stale files"),
		formatDuration(summary.Duration),
	)))
	renderWarnings(out, s, summary.Warnings)
}

func renderPlan(cmd *cobra.Command, root *rootFlags, plan *engine.Plan) {
	out := cmd.OutOrStdout()
	s := newStyles(out, root.noColor)

	fmt.Fprintf(out, "Would write %s for %s (dry run, nothing changed):\n",
		plural(len(plan.Files), "module", "modules"),
		plural(plan.Components(), "component", "components"),
	)
	fmt.Fprint(out, plan.String())
	renderWarnings(out, s, plan.Warnings)
}
