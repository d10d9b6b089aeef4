package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database/query"
)

// HouseRepository implements house.Repository using SQLite
type HouseRepository struct {
	db *sql.DB
}

// NewHouseRepository creates a new HouseRepository
func NewHouseRepository(store *Store) *HouseRepository {
	return &HouseRepository{db: store.db}
}

// Search returns available listings matching the filter
func (r *HouseRepository) Search(ctx context.Context, filter house.SearchFilter) ([]house.House, error) {
	sqlText, args := query.SearchHouses(query.Question, filter)
	return r.list(ctx, sqlText, args)
}

// GetByIDs returns the available listings among ids
func (r *HouseRepository) GetByIDs(ctx context.Context, ids []int64) ([]house.House, error) {
	if len(ids) == 0 {
		return []house.House{}, nil
	}
	sqlText, args := query.HousesByIDs(query.Question, ids)
	return r.list(ctx, sqlText, args)
}

// ListHouseTypes returns the distinct house types
func (r *HouseRepository) ListHouseTypes(ctx context.Context) ([]string, error) {
	sqlText, args := query.HouseTypes(query.Question)

	rows, err := r.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query house types: %w", err)
	}
	defer rows.Close()

	types := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan house type: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating house types: %w", err)
	}
	return types, nil
}

func (r *HouseRepository) list(ctx context.Context, sqlText string, args []any) ([]house.House, error) {
	houses, err := r.scanHouses(ctx, sqlText, args)
	if err != nil {
		return nil, err
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

func (r *HouseRepository) scanHouses(ctx context.Context, sqlText string, args []any) ([]house.House, error) {
	rows, err := r.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query houses: %w", err)
	}
	defer rows.Close()

	houses := []house.House{}
	for rows.Next() {
		var (
			h                           house.House
			published, created, updated string
		)
		err := rows.Scan(
			&h.ID, &h.Available, &published, &h.Price, &h.Acreage, &h.Address,
			&h.HouseNumber, &h.Street, &h.WardID, &h.Latitude, &h.Longitude, &h.Title, &h.PhoneNumber,
			&created, &updated, &h.HouseType, &h.ContractPeriod,
			&h.Bedrooms, &h.LivingRooms, &h.Kitchens,
			&h.WardName, &h.DistrictName, &h.ProvinceName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan house: %w", err)
		}

		if h.Published, err = parseTime(published); err != nil {
			return nil, fmt.Errorf("house %d: bad published date: %w", h.ID, err)
		}
		if h.CreateTime, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("house %d: bad create_time: %w", h.ID, err)
		}
		if h.UpdateTime, err = parseTime(updated); err != nil {
			return nil, fmt.Errorf("house %d: bad update_time: %w", h.ID, err)
		}

		houses = append(houses, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating houses: %w", err)
	}
	return houses, nil
}

func (r *HouseRepository) environmentsByHouse(ctx context.Context, ids []int64) (map[int64][]house.Environment, error) {
	sqlText, args := query.HouseEnvironments(query.Question, ids)

	rows, err := r.db.QueryContext(ctx, sqlText, args...)
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
