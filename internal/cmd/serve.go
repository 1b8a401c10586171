package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/salesclean/internal/config"
	"github.com/matthieukhl/salesclean/internal/metrics"
	"github.com/matthieukhl/salesclean/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Salesclean server",
	Long: `Start the Salesclean server which provides:
- REST API to upload an export and download the cleaned workbook
- JSON preview of the first cleaned rows
- Prometheus metrics at /metrics`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Salesclean Server Starting...")

	fmt.Println("📝 Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	fmt.Printf("📚 Catalog: %s (reloaded on every request)\n", cfg.Catalog.Path)

	fmt.Println("⚙️  Setting up server...")
	srv := server.NewServer(cfg, metrics.NewRegistry())

	fmt.Printf("🌐 Starting server on %s...\n", cfg.Server.Addr)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
