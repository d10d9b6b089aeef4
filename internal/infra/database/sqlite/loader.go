package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/location"
)

// Fixture is the JSON document accepted by Seed
type Fixture struct {
	Provinces    []location.Item     `json:"provinces"`
	Districts    []FixtureArea       `json:"districts"`
	Wards        []FixtureArea       `json:"wards"`
	Environments []house.Environment `json:"environments"`
	Houses       []FixtureHouse      `json:"houses"`
}

// FixtureArea is a district (parent = province) or ward (parent = district)
type FixtureArea struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID int64  `json:"parent_id"`
}

// FixtureHouse is a listing with the ids of its amenities
type FixtureHouse struct {
	house.House
	EnvironmentIDs []int64 `json:"environment_ids"`
}

// SeedStats counts the rows written by Seed
type SeedStats struct {
	Provinces    int `json:"provinces"`
	Districts    int `json:"districts"`
	Wards        int `json:"wards"`
	Environments int `json:"environments"`
	Houses       int `json:"houses"`
}

// DecodeFixture reads a fixture document
func DecodeFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// Seed upserts every row of f in a single transaction
func (s *Store) Seed(ctx context.Context, f *Fixture) (*SeedStats, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	stats := &SeedStats{}

	for _, p := range f.Provinces {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO provinces (id, name) VALUES (?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name`, p.ID, p.Name); err != nil {
			return nil, fmt.Errorf("failed to seed province %d: %w", p.ID, err)
		}
		stats.Provinces++
	}

	for _, d := range f.Districts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO districts (id, name, province_id) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name, province_id = excluded.province_id`, d.ID, d.Name, d.ParentID); err != nil {
			return nil, fmt.Errorf("failed to seed district %d: %w", d.ID, err)
		}
		stats.Districts++
	}

	for _, w := range f.Wards {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO wards (id, name, district_id) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name, district_id = excluded.district_id`, w.ID, w.Name, w.ParentID); err != nil {
			return nil, fmt.Errorf("failed to seed ward %d: %w", w.ID, err)
		}
		stats.Wards++
	}

	for _, e := range f.Environments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO environment (id, category, value) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET category = excluded.category, value = excluded.value`, e.ID, e.Category, e.Value); err != nil {
			return nil, fmt.Errorf("failed to seed environment %d: %w", e.ID, err)
		}
		stats.Environments++
	}

	for _, h := range f.Houses {
		if err := insertHouse(ctx, tx, h); err != nil {
			return nil, err
		}
		stats.Houses++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed: %w", err)
	}

	log.Info().
		Int("provinces", stats.Provinces).
		Int("districts", stats.Districts).
		Int("wards", stats.Wards).
		Int("environments", stats.Environments).
		Int("houses", stats.Houses).
		Msg("Fixture loaded")

	return stats, nil
}

func insertHouse(ctx context.Context, tx *sql.Tx, h FixtureHouse) error {
	// Links go first, REPLACE deletes the old listing row
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM house_rent_environment WHERE house_rent_id = ?`, h.ID); err != nil {
		return fmt.Errorf("failed to reset environments of house %d: %w", h.ID, err)
	}

	_, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO house_rent (
			id, available, published, price, acreage, address, house_number, street, ward_id,
			latitude, longitude, title, phone_number, create_time, update_time,
			house_type, contract_period, bedrooms, living_rooms, kitchens
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Available, h.Published.Format(dateLayout), h.Price, h.Acreage, h.Address,
		nullable(h.HouseNumber), nullable(h.Street), h.WardID, nullable(h.Latitude), nullable(h.Longitude),
		h.Title, nullable(h.PhoneNumber), formatTime(h.CreateTime), formatTime(h.UpdateTime),
		nullable(h.HouseType), nullable(h.ContractPeriod),
		nullable(h.Bedrooms), nullable(h.LivingRooms), nullable(h.Kitchens),
	)
	if err != nil {
		return fmt.Errorf("failed to seed house %d: %w", h.ID, err)
	}

	for _, envID := range h.EnvironmentIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO house_rent_environment (house_rent_id, environment_id) VALUES (?, ?)`,
			h.ID, envID); err != nil {
			return fmt.Errorf("failed to link environment %d to house %d: %w", envID, h.ID, err)
		}
	}
	return nil
}

func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
