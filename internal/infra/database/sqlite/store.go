package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// Times are stored as RFC 3339 text, published dates as plain dates
const (
	timeLayout = time.RFC3339
	dateLayout = "2006-01-02"
)

const schema = `
CREATE TABLE IF NOT EXISTS provinces (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS districts (
	id          INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	province_id INTEGER NOT NULL REFERENCES provinces(id)
);
CREATE TABLE IF NOT EXISTS wards (
	id          INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	district_id INTEGER NOT NULL REFERENCES districts(id)
);
CREATE TABLE IF NOT EXISTS environment (
	id       INTEGER PRIMARY KEY,
	category TEXT NOT NULL,
	value    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS house_rent (
	id              INTEGER PRIMARY KEY,
	available       BOOLEAN NOT NULL DEFAULT TRUE,
	published       TEXT NOT NULL,
	price           REAL NOT NULL,
	acreage         REAL NOT NULL,
	address         TEXT NOT NULL DEFAULT '',
	house_number    TEXT,
	street          TEXT,
	ward_id         INTEGER NOT NULL REFERENCES wards(id),
	latitude        REAL,
	longitude       REAL,
	title           TEXT NOT NULL DEFAULT '',
	phone_number    TEXT,
	create_time     TEXT NOT NULL,
	update_time     TEXT NOT NULL,
	house_type      TEXT,
	contract_period TEXT,
	bedrooms        INTEGER,
	living_rooms    INTEGER,
	kitchens        INTEGER
);
CREATE TABLE IF NOT EXISTS house_rent_environment (
	house_rent_id  INTEGER NOT NULL REFERENCES house_rent(id),
	environment_id INTEGER NOT NULL REFERENCES environment(id),
	PRIMARY KEY (house_rent_id, environment_id)
);
CREATE INDEX IF NOT EXISTS idx_house_rent_ward ON house_rent(ward_id);
CREATE INDEX IF NOT EXISTS idx_districts_province ON districts(province_id);
CREATE INDEX IF NOT EXISTS idx_wards_district ON wards(district_id);
`

// Store is an embedded SQLite database holding the listing tables
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path and ensures the schema
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := MemoryPath
	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn = "file:" + path
	}
	dsn += "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

	log.Info().Str("path", path).Msg("Opening SQLite database...")

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// Every connection to :memory: is a separate database
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, path: path}
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Info().Msg("✅ SQLite ready")
	return s, nil
}

// EnsureSchema creates missing tables
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// DB exposes the underlying handle
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database
func (s *Store) Close() error {
	log.Info().Msg("Closing SQLite database...")
	return s.db.Close()
}

// Health checks the database handle
func (s *Store) Health(ctx context.Context) *database.HealthStatus {
	start := time.Now()

	status := &database.HealthStatus{
		CheckedAt: start,
		Driver:    "sqlite",
		Status:    database.StatusHealthy,
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := s.db.PingContext(pingCtx); err != nil {
		status.Status = database.StatusUnhealthy
		status.Error = fmt.Sprintf("ping failed: %v", err)
		status.ResponseTime = time.Since(start).String()
		return status
	}

	stats := s.db.Stats()
	status.ActiveConns = int32(stats.InUse)
	status.IdleConns = int32(stats.Idle)
	status.TotalConns = int32(stats.OpenConnections)
	status.MaxConns = int32(stats.MaxOpenConnections)
	status.ResponseTime = time.Since(start).String()

	return status
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, s)
}
