package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/location"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database/query"
)

// LocationRepository implements location.Repository using SQLite
type LocationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a new LocationRepository
func NewLocationRepository(store *Store) *LocationRepository {
	return &LocationRepository{db: store.db}
}

// ListProvinces returns every province
func (r *LocationRepository) ListProvinces(ctx context.Context) ([]location.Item, error) {
	sqlText, args := query.Provinces(query.Question)
	return r.items(ctx, "provinces", sqlText, args)
}

// ListDistricts returns the districts of a province
func (r *LocationRepository) ListDistricts(ctx context.Context, provinceID *int64) ([]location.Item, error) {
	sqlText, args := query.Districts(query.Question, provinceID)
	return r.items(ctx, "districts", sqlText, args)
}

// ListWards returns the wards of a district
func (r *LocationRepository) ListWards(ctx context.Context, districtID *int64) ([]location.Item, error) {
	sqlText, args := query.Wards(query.Question, districtID)
	return r.items(ctx, "wards", sqlText, args)
}

func (r *LocationRepository) items(ctx context.Context, kind, sqlText string, args []any) ([]location.Item, error) {
	rows, err := r.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", kind, err)
	}
	defer rows.Close()

	items := []location.Item{}
	for rows.Next() {
		var it location.Item
		if err := rows.Scan(&it.ID, &it.Name); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", kind, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", kind, err)
	}
	return items, nil
}
