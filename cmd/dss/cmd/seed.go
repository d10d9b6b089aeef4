package cmd

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database/sqlite"
)

var seedDBPath string

// seedCmd loads a fixture into SQLite
var seedCmd = &cobra.Command{
	Use:   "seed <fixture.json>",
	Short: "Load a JSON fixture into the SQLite database",
	Long: `Upsert provinces, districts, wards, amenities and listings from a JSON fixture.
Running it twice with the same file leaves the database unchanged.

Examples:
  go run ./cmd/dss seed data/seed.json
  go run ./cmd/dss seed data/seed.json --db /tmp/houserent.db`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedDBPath, "db", "", "SQLite database path (overrides SQLITE_PATH)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	path := cfg.Database.SQLitePath
	if seedDBPath != "" {
		path = seedDBPath
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	fixture, err := sqlite.DecodeFixture(f)
	if err != nil {
		return err
	}

	// Concurrent seeds of one file would interleave their upserts
	if path != sqlite.MemoryPath {
		lock := flock.New(path + ".lock")
		locked, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("lock database: %w", err)
		}
		if !locked {
			return fmt.Errorf("another seed is running against %s", path)
		}
		defer lock.Unlock()
	}

	ctx := cmd.Context()
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Seed(ctx, fixture)
	if err != nil {
		return err
	}

	log.Info().
		Str("path", path).
		Int("provinces", stats.Provinces).
		Int("districts", stats.Districts).
		Int("wards", stats.Wards).
		Int("environments", stats.Environments).
		Int("houses", stats.Houses).
		Msg("✅ Fixture loaded")
	return nil
}
