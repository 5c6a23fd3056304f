// Package cli implements the sheetstore command-line interface.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the sheetstore CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sheetstore",
		Short: "Batch ingestion service for spreadsheet rows",
		Long: `sheetstore ingests tabular rows over HTTP, assigns each upload a
durable batch identifier, and persists rows with stable ordering for
later retrieval.`,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}
