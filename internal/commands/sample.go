package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/txrisk/internal/ingest"
)

func newSampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sample [file]",
		Short: "Write the built-in sample transactions as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return ingest.WriteCSV(cmd.OutOrStdout(), ingest.Sample())
			}
			return writeSample(args[0])
		},
	}
}

func writeSample(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := ingest.WriteCSV(f, ingest.Sample()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
