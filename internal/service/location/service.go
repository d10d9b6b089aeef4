package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/location"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/cache"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/pkg/logger"
)

// DefaultTTL applies when NewService gets a non-positive ttl
const DefaultTTL = 10 * time.Minute

// loadTimeout bounds a shared repository load, which outlives any single caller
const loadTimeout = 30 * time.Second

// Service serves administrative areas through a read-through cache.
// Concurrent misses on the same key share one repository call.
type Service struct {
	repo  location.Repository
	cache cache.Store
	ttl   time.Duration
	group singleflight.Group
}

// NewService creates a location service
func NewService(repo location.Repository, store cache.Store, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		repo:  repo,
		cache: store,
		ttl:   ttl,
	}
}

// Provinces returns every province
func (s *Service) Provinces(ctx context.Context) ([]location.Item, error) {
	return s.cached(ctx, "locations:provinces", func(ctx context.Context) ([]location.Item, error) {
		return s.repo.ListProvinces(ctx)
	})
}

// Districts returns the districts of a province, or all districts when provinceID is nil
func (s *Service) Districts(ctx context.Context, provinceID *int64) ([]location.Item, error) {
	return s.cached(ctx, "locations:districts:"+keyPart(provinceID), func(ctx context.Context) ([]location.Item, error) {
		return s.repo.ListDistricts(ctx, provinceID)
	})
}

// Wards returns the wards of a district, or all wards when districtID is nil
func (s *Service) Wards(ctx context.Context, districtID *int64) ([]location.Item, error) {
	return s.cached(ctx, "locations:wards:"+keyPart(districtID), func(ctx context.Context) ([]location.Item, error) {
		return s.repo.ListWards(ctx, districtID)
	})
}

func (s *Service) cached(ctx context.Context, key string, load func(context.Context) ([]location.Item, error)) ([]location.Item, error) {
	if items, ok := s.lookup(ctx, key); ok {
		return items, nil
	}

	// The load runs detached from the first caller; each caller only waits on its own ctx.
	ch := s.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		items, err := load(loadCtx)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
		s.store(loadCtx, key, items)
		return items, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	v, shared := res.Val, res.Shared

	logger.Ctx(ctx).Debug().
		Str("key", key).
		Bool("shared", shared).
		Msg("Location cache filled")

	return v.([]location.Item), nil
}

func (s *Service) lookup(ctx context.Context, key string) ([]location.Item, bool) {
	b, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			logger.Ctx(ctx).Warn().Err(err).Str("key", key).Str("cache", s.cache.Name()).Msg("Cache read failed, falling back to database")
		}
		return nil, false
	}

	var items []location.Item
	if err := json.Unmarshal(b, &items); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Corrupt cache entry ignored")
		return nil, false
	}
	return items, true
}

func (s *Service) store(ctx context.Context, key string, items []location.Item) {
	b, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Str("cache", s.cache.Name()).Msg("Cache write failed")
	}
}

func keyPart(id *int64) string {
	if id == nil {
		return "all"
	}
	return strconv.FormatInt(*id, 10)
}
