package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/txrisk/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "txrisk",
		Short:   "Transaction graph cycle detection and risk scoring",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newSampleCommand())
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
