package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/app"
)

var servePort string

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server. Ctrl+C stops it gracefully.

Examples:
  go run ./cmd/dss serve
  go run ./cmd/dss serve --port 8080
  DB_DRIVER=sqlite go run ./cmd/dss serve`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if servePort != "" {
		cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("version", serviceVersion).
		Str("driver", cfg.Database.Driver).
		Msg("🚀 Starting House Rent DSS API Server...")

	backend, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	router, err := app.NewRouter(cfg, backend, serviceVersion)
	if err != nil {
		return err
	}

	if err := app.Serve(ctx, cfg, router.Engine()); err != nil {
		return err
	}

	log.Info().Msg("👋 House Rent DSS API Server stopped")
	return nil
}
