package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/salesclean/internal/config"
	"github.com/matthieukhl/salesclean/internal/models"
)

var (
	catalogPath string
	catalogKey  string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [SKU...]",
	Short: "Inspect the master product catalog",
	Long: `Load the master catalog, print its size and look up the given keys.
Keys are matched the way a cleaning run matches them: trimmed, Unicode
normalized and without the ".0" suffix spreadsheets add to numeric SKUs.`,
	RunE: inspectCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().StringVar(&catalogPath, "path", "", "Catalog file (default from config)")
	catalogCmd.Flags().StringVar(&catalogKey, "key", "sku", "Key column to search (sku|partner-sku)")
}

func inspectCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	path := cfg.Catalog.Path
	if catalogPath != "" {
		path = catalogPath
	}

	var kind models.LookupKey
	switch catalogKey {
	case "sku":
		kind = models.LookupSKU
	case "partner-sku":
		kind = models.LookupPartnerSKU
	default:
		return fmt.Errorf("unknown key %q (expected sku or partner-sku)", catalogKey)
	}

	cat, err := openCatalog(context.Background(), path, true)
	if err != nil {
		return err
	}

	for _, key := range args {
		e, ok := cat.Lookup(kind, key)
		if !ok {
			fmt.Printf("❌ %s: not in catalog\n", key)
			continue
		}
		fmt.Printf("✅ %s: %s / %s / %s", key, e.Brand, e.Category, e.SubCategory)
		if e.ProductTitle != "" {
			fmt.Printf(" - %s", e.ProductTitle)
		}
		fmt.Println()
	}
	return nil
}
