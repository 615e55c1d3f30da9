package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type checkOptions struct {
	showDiff bool
}

var checkCmdRunner = runCheck

func newCheckCmd(root *rootFlags) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report generated files that are out of date without writing",
		Long: `Check builds every registration module in memory and compares the result
with the files on disk. Returns exit code 0 when everything is up to date and
exit code 1 when a regeneration is needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkCmdRunner(cmd, root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.showDiff, "diff", false, "Print a unified diff for every stale file")

	return cmd
}

func runCheck(cmd *cobra.Command, root *rootFlags, opts *checkOptions) error {
	ctrl, _, err := root.controller(cmd, "check")
	if err != nil {
		return err
	}

	drift, err := ctrl.Check()
	if err != nil {
		return newCommandError("check", "building "+ctrl.Root(), err, generateSuggestion(err))
	}

	out := cmd.OutOrStdout()
	s := newStyles(out, root.noColor)

	if drift.InSync() {
		fmt.Fprintln(out, s.ok(fmt.Sprintf("%s up to date", plural(len(drift.Plan.Files), "generated file", "generated files"))))
		renderWarnings(out, s, drift.Plan.Warnings)
		return nil
	}

	for _, stale := range drift.Stale {
		fmt.Fprintln(out, s.fail("stale    "+stale.Path))
		if opts.showDiff && stale.Diff != "" {
			fmt.Fprint(out, stale.Diff)
		}
	}
	for _, path := range drift.Missing {
		fmt.Fprintln(out, s.fail("missing  "+path))
	}
	for _, path := range drift.Orphaned {
		fmt.Fprintln(out, s.fail("orphaned "+path))
	}
	renderWarnings(out, s, drift.Plan.Warnings)

	return &exitError{
		code:    1,
		message: fmt.Sprintf("generated files are out of date (%d stale, %d missing, %d orphaned); run elemgen to regenerate", len(drift.Stale), len(drift.Missing), len(drift.Orphaned)),
	}
}
