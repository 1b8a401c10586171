package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/salesclean/internal/clean"
)

var marketplacesCmd = &cobra.Command{
	Use:   "marketplaces",
	Short: "List supported marketplaces and their expected columns",
	RunE:  listMarketplaces,
}

func init() {
	rootCmd.AddCommand(marketplacesCmd)
}

func listMarketplaces(cmd *cobra.Command, args []string) error {
	fmt.Println("🛒 Supported marketplaces:")
	for _, info := range clean.Supported() {
		if !info.Implemented {
			fmt.Printf("\n🚧 %s (not implemented yet)\n", info.Marketplace)
			continue
		}
		fmt.Printf("\n✅ %s -> %s\n", info.Marketplace, info.Output)
		fmt.Printf("   Columns: %s\n", strings.Join(info.Columns, ", "))
		if info.SheetColumn != "" {
			fmt.Printf("   Sheet name becomes: %s\n", info.SheetColumn)
		}
		fmt.Printf("   Catalog key: %s\n", info.Lookup)
	}
	return nil
}
