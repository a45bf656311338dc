package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"route-cost-service/internal/domain"
)

// InitSchemaPg creates the shared catalog tables on Postgres. Only the
// toll catalog and vehicle profiles live in Postgres; route history and
// the evaluation cache stay local to each instance.
func InitSchemaPg(pg *sql.DB) error {
	stmts := []string{
		`
		CREATE TABLE IF NOT EXISTS toll_points (
			toll_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lng DOUBLE PRECISION NOT NULL,
			road_name TEXT NOT NULL DEFAULT '',
			cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			restrictions TEXT NOT NULL DEFAULT ''
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS vehicle_profiles (
			vehicle_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			fuel_efficiency DOUBLE PRECISION NOT NULL,
			fuel_cost_per_liter DOUBLE PRECISION NOT NULL,
			toll_multiplier DOUBLE PRECISION NOT NULL
		);
		`,
		`CREATE INDEX IF NOT EXISTS idx_toll_points_road_name ON toll_points (road_name);`,
	}

	tx, err := pg.Begin()
	if err != nil {
		return fmt.Errorf("init pg schema: begin tx: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init pg schema: statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init pg schema: commit tx: %w", err)
	}

	return nil
}

// SeedFromJSONPg upserts the toll catalog and vehicle profiles from the
// same JSON seed file format the SQLite seeder uses.
func SeedFromJSONPg(pg *sql.DB, jsonPath string) error {
	payload, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed pg catalog: read %q: %w", jsonPath, err)
	}

	var data SeedFile
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("seed pg catalog: parse json: %w", err)
	}

	for i, toll := range data.Tolls {
		if toll.TollID <= 0 {
			return fmt.Errorf("seed pg catalog: invalid toll_id at index %d: %d", i+1, toll.TollID)
		}
		if strings.TrimSpace(toll.Name) == "" {
			return fmt.Errorf("seed pg catalog: toll at index %d: name cannot be empty", i+1)
		}
	}
	for i, v := range data.Vehicles {
		if v.VehicleID <= 0 {
			return fmt.Errorf("seed pg catalog: invalid vehicle_id at index %d: %d", i+1, v.VehicleID)
		}
		profile := domain.VehicleProfile{
			ID: v.VehicleID, Name: v.Name, Type: domain.VehicleType(v.Type),
			FuelEfficiency:   v.FuelEfficiency,
			FuelCostPerLiter: v.FuelCostPerLiter,
			TollMultiplier:   v.TollMultiplier,
		}
		if err := profile.Validate(); err != nil {
			return fmt.Errorf("seed pg catalog: vehicle at index %d: %w", i+1, err)
		}
	}

	tx, err := pg.Begin()
	if err != nil {
		return fmt.Errorf("seed pg catalog: begin tx: %w", err)
	}
	defer tx.Rollback()

	tollStmt, err := tx.Prepare(`
	INSERT INTO toll_points (toll_id, name, lat, lng, road_name, cost, restrictions)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (toll_id) DO UPDATE SET
		name = EXCLUDED.name,
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		road_name = EXCLUDED.road_name,
		cost = EXCLUDED.cost,
		restrictions = EXCLUDED.restrictions;
	`)
	if err != nil {
		return fmt.Errorf("seed pg catalog: prepare toll upsert: %w", err)
	}
	defer tollStmt.Close()

	for _, t := range data.Tolls {
		if _, err := tollStmt.Exec(t.TollID, t.Name, t.Lat, t.Lng, t.RoadName, t.Cost, t.Restrictions); err != nil {
			return fmt.Errorf("seed pg catalog: upsert toll_id=%d: %w", t.TollID, err)
		}
	}

	vehicleStmt, err := tx.Prepare(`
	INSERT INTO vehicle_profiles (vehicle_id, name, type, fuel_efficiency, fuel_cost_per_liter, toll_multiplier)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (vehicle_id) DO UPDATE SET
		name = EXCLUDED.name,
		type = EXCLUDED.type,
		fuel_efficiency = EXCLUDED.fuel_efficiency,
		fuel_cost_per_liter = EXCLUDED.fuel_cost_per_liter,
		toll_multiplier = EXCLUDED.toll_multiplier;
	`)
	if err != nil {
		return fmt.Errorf("seed pg catalog: prepare vehicle upsert: %w", err)
	}
	defer vehicleStmt.Close()

	for _, v := range data.Vehicles {
		if _, err := vehicleStmt.Exec(v.VehicleID, v.Name, v.Type, v.FuelEfficiency, v.FuelCostPerLiter, v.TollMultiplier); err != nil {
			return fmt.Errorf("seed pg catalog: upsert vehicle_id=%d: %w", v.VehicleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed pg catalog: commit tx: %w", err)
	}

	return nil
}
