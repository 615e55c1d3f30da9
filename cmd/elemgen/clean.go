package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanCmdRunner = runClean

func newCleanCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete every generated registration module and the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cleanCmdRunner(cmd, root)
		},
	}
}

func runClean(cmd *cobra.Command, root *rootFlags) error {
	ctrl, _, err := root.controller(cmd, "clean")
	if err != nil {
		return err
	}

	removed, err := ctrl.Clean()
	if err != nil {
		return newCommandError("clean", "removing generated files under "+ctrl.Root(), err, generateSuggestion(err))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, newStyles(out, root.noColor).ok(fmt.Sprintf("Removed %s", plural(removed, "generated file", "generated files"))))
	return nil
}
