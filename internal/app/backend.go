package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/location"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/cache"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database/postgres"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database/sqlite"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/pkg/config"
)

// Backend bundles the storage selected by configuration
type Backend struct {
	Houses       house.Repository
	Environments house.EnvironmentRepository
	Locations    location.Repository
	Health       database.HealthChecker
	Cache        cache.Store

	// SQLite is set when DB_DRIVER=sqlite
	SQLite *sqlite.Store

	closers []func() error
}

// Open connects the database named by cfg.Database.Driver and the location cache
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	b := &Backend{}

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		b.Houses = postgres.NewHouseRepository(pool)
		b.Environments = postgres.NewEnvironmentRepository(pool)
		b.Locations = postgres.NewLocationRepository(pool)
		b.Health = pool
		b.closers = append(b.closers, func() error { pool.Close(); return nil })

	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.useSQLite(store)

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	b.Cache = openCache(ctx, cfg.Redis)
	b.closers = append(b.closers, b.Cache.Close)

	return b, nil
}

// NewSQLiteBackend serves an already opened SQLite store with an in-process cache
func NewSQLiteBackend(store *sqlite.Store) *Backend {
	b := &Backend{}
	b.useSQLite(store)
	b.Cache = cache.NewMemoryStore()
	b.closers = append(b.closers, b.Cache.Close)
	return b
}

func (b *Backend) useSQLite(store *sqlite.Store) {
	b.SQLite = store
	b.Houses = sqlite.NewHouseRepository(store)
	b.Environments = sqlite.NewEnvironmentRepository(store)
	b.Locations = sqlite.NewLocationRepository(store)
	b.Health = store
	b.closers = append(b.closers, store.Close)
}

// openCache prefers Redis and falls back to memory when Redis is off or unreachable
func openCache(ctx context.Context, cfg config.RedisConfig) cache.Store {
	if !cfg.Enabled {
		return cache.NewMemoryStore()
	}

	store, err := cache.NewRedisStore(ctx, cache.RedisOptions{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		Prefix:   "dss:",
	})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("Redis unavailable, using in-memory cache")
		return cache.NewMemoryStore()
	}

	log.Info().Str("addr", cfg.Addr).Msg("✅ Redis cache connected")
	return store
}

// Close releases resources in reverse order of acquisition
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}
