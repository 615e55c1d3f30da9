package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmdRunner = runVerify

func newVerifyCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Simulate loading the generated modules and check every tag is defined once",
		Long: `Verify evaluates the generated modules on disk with load-once module
semantics. The manifest must define every tag exactly once, and each
registration module loaded on its own must define all of its dependencies
before itself. Returns exit code 1 when any check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return verifyCmdRunner(cmd, root)
		},
	}
}

func runVerify(cmd *cobra.Command, root *rootFlags) error {
	ctrl, _, err := root.controller(cmd, "verify")
	if err != nil {
		return err
	}

	report, err := ctrl.Verify()
	if err != nil {
		return newCommandError("verify", "reading generated modules under "+ctrl.Root(), err, "Run elemgen to generate the modules first.")
	}

	out := cmd.OutOrStdout()
	s := newStyles(out, root.noColor)

	if report.OK() {
		fmt.Fprintln(out, s.ok(fmt.Sprintf(
			"Verified %s; the manifest defines %s exactly once",
			plural(report.Modules, "registration module", "registration modules"),
			plural(len(report.Tags), "tag", "tags"),
		)))
		return nil
	}

	for _, problem := range report.Problems {
		fmt.Fprintln(out, s.fail(problem.String()))
	}
	return &exitError{code: 1, message: fmt.Sprintf("verification failed with %s", plural(len(report.Problems), "problem", "problems"))}
}
