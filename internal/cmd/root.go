package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "salesclean",
	Short: "Salesclean - marketplace sales export normalizer",
	Long: `Salesclean turns raw order exports from Noon, Amazon, Revibe, Talabat and
Careem into one canonical sales table, backfilling brand and category data
from a master product catalog.

It can be used via CLI commands to clean a single export, or run as a server
that accepts uploads and returns the cleaned workbook.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
