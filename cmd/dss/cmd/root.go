// Package cmd - dss CLI commands
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/pkg/config"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/pkg/logger"
)

const (
	serviceName    = "houserent-dss"
	serviceVersion = "1.0.0"
)

var (
	// Common flags
	envFile string
	verbose bool

	// cfg is loaded by the root PersistentPreRunE
	cfg *config.Config
)

// rootCmd is the root command
var rootCmd = &cobra.Command{
	Use:   "dss",
	Short: "House rent decision support - CLI",
	Long: `House rent decision support - CLI

Usage:
    go run ./cmd/dss [command]

Commands:
    serve      - HTTP API server (Port from PORT, default 8000)
    seed       - Load a JSON fixture into the SQLite database
    compare    - Rank listings with TOPSIS and print the result
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(compareCmd)
}

// initConfig loads the env file, the configuration and the logger
func initConfig() error {
	if err := godotenv.Load(envFile); err != nil && verbose {
		// A missing env file is fine, the environment may carry everything
		fmt.Fprintf(os.Stderr, "Warning: %s not loaded, using environment variables\n", envFile)
	}

	var err error
	cfg, err = config.FromEnv()
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	return logger.Init(logger.Config{
		Level:          level,
		Format:         cfg.Logging.Format,
		FileEnabled:    cfg.Logging.FileEnabled,
		FilePath:       cfg.Logging.FilePath,
		RotationSize:   cfg.Logging.RotationSize,
		RetentionDays:  cfg.Logging.RetentionDays,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	})
}
