package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/salesclean/internal/catalog"
	"github.com/matthieukhl/salesclean/internal/clean"
	"github.com/matthieukhl/salesclean/internal/config"
	"github.com/matthieukhl/salesclean/internal/export"
	"github.com/matthieukhl/salesclean/internal/models"
)

var (
	cleanMarketplace string
	cleanInput       string
	cleanOutput      string
	cleanCatalog     string
	cleanPreview     int
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean one marketplace export",
	Long: `Read a raw marketplace export (.csv, .xlsx or .xls), normalize it into the
canonical sales schema, backfill brand and category data from the master
catalog and write the cleaned workbook.

The output defaults to Cleaned_<Marketplace>_Data.xlsx in the configured
output directory. Use a .csv output path to get CSV instead.`,
	RunE: cleanExport,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringVarP(&cleanMarketplace, "marketplace", "m", "", "Marketplace the export came from (Noon|Amazon|Revibe|Talabat|Careem)")
	cleanCmd.Flags().StringVarP(&cleanInput, "input", "i", "", "Raw export file")
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "Output file (default <output.dir>/Cleaned_<Marketplace>_Data.xlsx)")
	cleanCmd.Flags().StringVar(&cleanCatalog, "catalog", "", "Master catalog file (default from config)")
	cleanCmd.Flags().IntVar(&cleanPreview, "preview", 5, "Number of cleaned rows to print")
	cleanCmd.MarkFlagRequired("marketplace")
	cleanCmd.MarkFlagRequired("input")
}

func cleanExport(cmd *cobra.Command, args []string) error {
	m, err := models.ParseMarketplace(cleanMarketplace)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	catalogPath := cfg.Catalog.Path
	if cleanCatalog != "" {
		catalogPath = cleanCatalog
	}
	cat, err := openCatalog(ctx, catalogPath, cfg.Catalog.Required || cleanCatalog != "")
	if err != nil {
		return err
	}

	fmt.Printf("🧹 Cleaning %s export %s...\n", m, cleanInput)
	res := clean.Run(ctx, m, cleanInput, cat)

	switch res.State {
	case clean.StateNotImplemented:
		fmt.Printf("🚧 %s cleaning not implemented yet.\n", m)
		return nil
	case clean.StateFailed:
		return fmt.Errorf("run %s failed: %w", res.RunID, res.Err)
	}

	printRunSummary(res)
	printPreview(res.Table, cleanPreview)

	dest := cleanOutput
	if dest == "" {
		dest = export.Destination(cfg.Output.Dir, m)
	}
	fmt.Printf("💾 Writing %s...\n", dest)
	if err := export.Write(res.Table, dest); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Printf("✅ %s data cleaned successfully (%d rows, run %s)\n", m, res.Table.Len(), res.RunID)
	return nil
}

// openCatalog loads the master catalog, warning instead of failing when an
// optional catalog is absent
func openCatalog(ctx context.Context, path string, required bool) (*catalog.Catalog, error) {
	fmt.Printf("📚 Loading catalog %s...\n", path)
	cat, err := catalog.Open(ctx, path, required)
	if err != nil {
		return nil, err
	}
	if cat.Missing() {
		fmt.Printf("⚠️  Catalog %s not found, brand and category backfill disabled\n", path)
		return cat, nil
	}
	sku, partnerSKU := cat.Keys()
	fmt.Printf("   %d rows, %d SKU keys, %d Partner SKU keys\n", cat.Len(), sku, partnerSKU)
	return cat, nil
}

func printRunSummary(res *clean.Result) {
	st := res.Table.Stats
	fmt.Printf("📊 Rows read: %d\n", st.RowsIn)
	fmt.Printf("   Dropped (missing date, SKU or status): %d\n", st.MissingRequired)
	fmt.Printf("   Dropped (excluded status): %d\n", st.Excluded)
	fmt.Printf("   Rows out: %d\n", st.RowsOut)
	if res.Fill.Rows > 0 {
		fmt.Printf("🔗 Catalog backfill: %d matched, %d missed, %d fields filled\n",
			res.Fill.Matched, res.Fill.Missed, res.Fill.FilledTotal())
	}
}

func printPreview(table *models.Table, n int) {
	if n <= 0 || table.Len() == 0 {
		return
	}
	if n > table.Len() {
		n = table.Len()
	}
	fmt.Printf("\n🔍 First %d row%s:\n", n, plural(n))
	fmt.Printf("   %s\n", strings.Join(table.Header(), " | "))
	for _, rec := range table.Records[:n] {
		cells := make([]string, len(table.Columns))
		for i, c := range table.Columns {
			cells[i] = truncate(rec.Text(c.Field), 30)
		}
		fmt.Printf("   %s\n", strings.Join(cells, " | "))
	}
	fmt.Println()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
