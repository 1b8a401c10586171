package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/salesclean/internal/samples"
)

var samplesDir string

var samplesCmd = &cobra.Command{
	Use:   "generate-samples",
	Short: "Write synthetic marketplace exports for testing",
	Long: `Write a small synthetic export for Noon (CSV), Amazon (multi-sheet XLSX)
and Revibe (CSV) together with a matching master catalog. The files exercise
status exclusion, cancelled orders, partner classification and catalog
backfill, and can be fed straight to the clean command.`,
	RunE: generateSamples,
}

func init() {
	rootCmd.AddCommand(samplesCmd)

	samplesCmd.Flags().StringVar(&samplesDir, "dir", "samples", "Directory to write the sample files to")
}

func generateSamples(cmd *cobra.Command, args []string) error {
	fmt.Printf("🧪 Generating sample exports in %s...\n", samplesDir)

	paths, err := samples.Write(samplesDir)
	if err != nil {
		return fmt.Errorf("failed to generate samples: %w", err)
	}

	for _, p := range paths {
		fmt.Printf("   📄 %s\n", p)
	}
	fmt.Printf("\n💡 Try: salesclean clean -m Amazon -i %s/%s --catalog %s/%s\n",
		samplesDir, samples.AmazonFile, samplesDir, samples.CatalogFile)
	return nil
}
