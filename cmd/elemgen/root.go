package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/elemgen/internal/logger"
)

type rootFlags struct {
	configPath string
	root       string
	verbose    bool
	logFormat  string
	noColor    bool
	// dryRun is shared by the root command and generate.
	dryRun bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "elemgen",
		Short: "Generate custom element registration modules from annotated components",
		Long: `elemgen scans annotated component modules, resolves the dependencies
between custom elements and writes one registration module per component plus
an umbrella manifest. Running it with no subcommand regenerates everything.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateCmdRunner(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to elemgen.yaml or elemgen.hcl (discovered when omitted)")
	cmd.PersistentFlags().StringVar(&flags.root, "root", "", "Override the component source root")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", string(logger.FormatConsole), "Log format: console or json")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the files that would be written without touching the source tree")

	cmd.AddCommand(newGenerateCmd(flags))
	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newVerifyCmd(flags))
	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newCleanCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
