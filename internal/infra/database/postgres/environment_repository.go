package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database/query"
)

// EnvironmentRepository implements house.EnvironmentRepository using PostgreSQL
type EnvironmentRepository struct {
	pool *Pool
}

// NewEnvironmentRepository creates a new EnvironmentRepository
func NewEnvironmentRepository(pool *Pool) *EnvironmentRepository {
	return &EnvironmentRepository{pool: pool}
}

// List returns the amenity catalog filtered by value
func (r *EnvironmentRepository) List(ctx context.Context, search string) ([]house.Environment, error) {
	sql, args := query.Environments(query.Dollar, search)
	return r.collect(ctx, sql, args)
}

// GetByIDs returns the amenities among ids
func (r *EnvironmentRepository) GetByIDs(ctx context.Context, ids []int64) ([]house.Environment, error) {
	if len(ids) == 0 {
		return []house.Environment{}, nil
	}
	sql, args := query.EnvironmentsByIDs(query.Dollar, ids)
	return r.collect(ctx, sql, args)
}

func (r *EnvironmentRepository) collect(ctx context.Context, sql string, args []any) ([]house.Environment, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query environments: %w", err)
	}

	envs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (house.Environment, error) {
		var env house.Environment
		err := row.Scan(&env.ID, &env.Category, &env.Value)
		return env, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan environments: %w", err)
	}
	return envs, nil
}
