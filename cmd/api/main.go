package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/app"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/pkg/config"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/pkg/logger"
)

const (
	serviceName    = "houserent-dss-api"
	serviceVersion = "1.0.0"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		FileEnabled:    cfg.Logging.FileEnabled,
		FilePath:       cfg.Logging.FilePath,
		RotationSize:   cfg.Logging.RotationSize,
		RetentionDays:  cfg.Logging.RetentionDays,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("version", serviceVersion).
		Str("driver", cfg.Database.Driver).
		Msg("🚀 Starting House Rent DSS API Server...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := app.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer backend.Close()

	router, err := app.NewRouter(cfg, backend, serviceVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build router")
	}

	if err := app.Serve(ctx, cfg, router.Engine()); err != nil {
		log.Error().Err(err).Msg("API server stopped with error")
		return
	}

	log.Info().Msg("👋 House Rent DSS API Server stopped")
}
