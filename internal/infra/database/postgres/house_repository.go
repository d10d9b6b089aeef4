package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database/query"
)

// HouseRepository implements house.Repository using PostgreSQL
type HouseRepository struct {
	pool *Pool
}

// NewHouseRepository creates a new HouseRepository
func NewHouseRepository(pool *Pool) *HouseRepository {
	return &HouseRepository{pool: pool}
}

// Search returns available listings matching the filter
func (r *HouseRepository) Search(ctx context.Context, filter house.SearchFilter) ([]house.House, error) {
	sql, args := query.SearchHouses(query.Dollar, filter)
	return r.list(ctx, sql, args)
}

// GetByIDs returns the available listings among ids
func (r *HouseRepository) GetByIDs(ctx context.Context, ids []int64) ([]house.House, error) {
	if len(ids) == 0 {
		return []house.House{}, nil
	}
	sql, args := query.HousesByIDs(query.Dollar, ids)
	return r.list(ctx, sql, args)
}

// ListHouseTypes returns the distinct house types
func (r *HouseRepository) ListHouseTypes(ctx context.Context) ([]string, error) {
	sql, args := query.HouseTypes(query.Dollar)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query house types: %w", err)
	}

	types, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan house types: %w", err)
	}
	return types, nil
}

func (r *HouseRepository) list(ctx context.Context, sql string, args []any) ([]house.House, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query houses: %w", err)
	}
	defer rows.Close()

	houses := []house.House{}
	for rows.Next() {
		var h house.House
		err := rows.Scan(
			&h.ID, &h.Available, &h.Published, &h.Price, &h.Acreage, &h.Address,
			&h.HouseNumber, &h.Street, &h.WardID, &h.Latitude, &h.Longitude, &h.Title, &h.PhoneNumber,
			&h.CreateTime, &h.UpdateTime, &h.HouseType, &h.ContractPeriod,
			&h.Bedrooms, &h.LivingRooms, &h.Kitchens,
			&h.WardName, &h.DistrictName, &h.ProvinceName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan house: %w", err)
		}
		houses = append(houses, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating houses: %w", err)
	}

	if len(houses) == 0 {
		return houses, nil
	}

	envs, err := r.environmentsByHouse(ctx, database.HouseIDs(houses))
	if err != nil {
		return nil, err
	}
	database.AttachEnvironments(houses, envs)

	return houses, nil
}

func (r *HouseRepository) environmentsByHouse(ctx context.Context, ids []int64) (map[int64][]house.Environment, error) {
	sql, args := query.HouseEnvironments(query.Dollar, ids)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query house environments: %w", err)
	}
	defer rows.Close()

	byHouse := make(map[int64][]house.Environment)
	for rows.Next() {
		var (
			houseID int64
			env     house.Environment
		)
		if err := rows.Scan(&houseID, &env.ID, &env.Category, &env.Value); err != nil {
			return nil, fmt.Errorf("failed to scan house environment: %w", err)
		}
		byHouse[houseID] = append(byHouse[houseID], env)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating house environments: %w", err)
	}
	return byHouse, nil
}
