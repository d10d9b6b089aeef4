package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/location"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database/query"
)

// LocationRepository implements location.Repository using PostgreSQL
type LocationRepository struct {
	pool *Pool
}

// NewLocationRepository creates a new LocationRepository
func NewLocationRepository(pool *Pool) *LocationRepository {
	return &LocationRepository{pool: pool}
}

// ListProvinces returns every province
func (r *LocationRepository) ListProvinces(ctx context.Context) ([]location.Item, error) {
	sql, args := query.Provinces(query.Dollar)
	return r.items(ctx, "provinces", sql, args)
}

// ListDistricts returns the districts of a province
func (r *LocationRepository) ListDistricts(ctx context.Context, provinceID *int64) ([]location.Item, error) {
	sql, args := query.Districts(query.Dollar, provinceID)
	return r.items(ctx, "districts", sql, args)
}

// ListWards returns the wards of a district
func (r *LocationRepository) ListWards(ctx context.Context, districtID *int64) ([]location.Item, error) {
	sql, args := query.Wards(query.Dollar, districtID)
	return r.items(ctx, "wards", sql, args)
}

func (r *LocationRepository) items(ctx context.Context, kind, sql string, args []any) ([]location.Item, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", kind, err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[location.Item])
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", kind, err)
	}
	return items, nil
}
