package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database/query"
)

// EnvironmentRepository implements house.EnvironmentRepository using SQLite
type EnvironmentRepository struct {
	db *sql.DB
}

// NewEnvironmentRepository creates a new EnvironmentRepository
func NewEnvironmentRepository(store *Store) *EnvironmentRepository {
	return &EnvironmentRepository{db: store.db}
}

// List returns the amenity catalog filtered by value
func (r *EnvironmentRepository) List(ctx context.Context, search string) ([]house.Environment, error) {
	sqlText, args := query.Environments(query.Question, search)
	return r.collect(ctx, sqlText, args)
}

// GetByIDs returns the amenities among ids
func (r *EnvironmentRepository) GetByIDs(ctx context.Context, ids []int64) ([]house.Environment, error) {
	if len(ids) == 0 {
		return []house.Environment{}, nil
	}
	sqlText, args := query.EnvironmentsByIDs(query.Question, ids)
	return r.collect(ctx, sqlText, args)
}

func (r *EnvironmentRepository) collect(ctx context.Context, sqlText string, args []any) ([]house.Environment, error) {
	rows, err := r.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query environments: %w", err)
	}
	defer rows.Close()

	envs := []house.Environment{}
	for rows.Next() {
		var env house.Environment
		if err := rows.Scan(&env.ID, &env.Category, &env.Value); err != nil {
			return nil, fmt.Errorf("failed to scan environment: %w", err)
		}
		envs = append(envs, env)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating environments: %w", err)
	}
	return envs, nil
}
