package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"route-cost-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTollPointsQuery := `
	CREATE TABLE IF NOT EXISTS toll_points (
		toll_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		road_name TEXT NOT NULL,
		cost REAL NOT NULL DEFAULT 0,
		restrictions TEXT NOT NULL DEFAULT ''
	);
	`

	createVehicleProfilesQuery := `
	CREATE TABLE IF NOT EXISTS vehicle_profiles (
		vehicle_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		fuel_efficiency REAL NOT NULL,
		fuel_cost_per_liter REAL NOT NULL,
		toll_multiplier REAL NOT NULL DEFAULT 100
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		route_id INTEGER PRIMARY KEY AUTOINCREMENT,
		waypoint_ids TEXT NOT NULL,
		waypoint_names TEXT NOT NULL,
		total_distance_meters INTEGER NOT NULL,
		total_duration_seconds INTEGER NOT NULL,
		fuel_cost REAL NOT NULL,
		toll_cost REAL NOT NULL,
		total_cost REAL NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	createEvalCacheQuery := `
	CREATE TABLE IF NOT EXISTS eval_cache (
		waypoint_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_toll_points_road_name
	ON toll_points(road_name);
	`

	statements := []string{
		createTollPointsQuery,
		createVehicleProfilesQuery,
		createRoutesQuery,
		createEvalCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type TollSeed struct {
	TollID       int     `json:"toll_id"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	RoadName     string  `json:"road_name"`
	Cost         float64 `json:"cost"`
	Restrictions string  `json:"restrictions"`
}

type VehicleSeed struct {
	VehicleID        int     `json:"vehicle_id"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	FuelEfficiency   float64 `json:"fuel_efficiency"`
	FuelCostPerLiter float64 `json:"fuel_cost_per_liter"`
	TollMultiplier   float64 `json:"toll_multiplier"`
}

type SeedFile struct {
	Tolls    []TollSeed    `json:"tolls"`
	Vehicles []VehicleSeed `json:"vehicles"`
}

// Populate the database with the toll catalog and vehicle profiles
// from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	payload, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalog: read %q: %w", jsonPath, err)
	}

	var data SeedFile
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("seed catalog: parse json: %w", err)
	}

	for i, toll := range data.Tolls {
		if toll.TollID <= 0 {
			return fmt.Errorf("seed catalog: invalid toll_id at index %d: %d", i+1, toll.TollID)
		}
		if strings.TrimSpace(toll.Name) == "" {
			return fmt.Errorf("seed catalog: toll at index %d: name cannot be empty", i+1)
		}
	}
	for i, v := range data.Vehicles {
		if v.VehicleID <= 0 {
			return fmt.Errorf("seed catalog: invalid vehicle_id at index %d: %d", i+1, v.VehicleID)
		}
		profile := domain.VehicleProfile{
			ID: v.VehicleID, Name: v.Name, Type: domain.VehicleType(v.Type),
			FuelEfficiency:   v.FuelEfficiency,
			FuelCostPerLiter: v.FuelCostPerLiter,
			TollMultiplier:   v.TollMultiplier,
		}
		if err := profile.Validate(); err != nil {
			return fmt.Errorf("seed catalog: vehicle at index %d: %w", i+1, err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer tx.Rollback()

	tollStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO toll_points (
		toll_id, name, lat, lng, road_name, cost, restrictions
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare toll insert: %w", err)
	}
	defer tollStmt.Close()

	for _, t := range data.Tolls {
		if _, err := tollStmt.Exec(t.TollID, t.Name, t.Lat, t.Lng, t.RoadName, t.Cost, t.Restrictions); err != nil {
			return fmt.Errorf("seed catalog: insert toll_id=%d: %w", t.TollID, err)
		}
	}

	vehicleStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO vehicle_profiles (
		vehicle_id, name, type, fuel_efficiency, fuel_cost_per_liter, toll_multiplier
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare vehicle insert: %w", err)
	}
	defer vehicleStmt.Close()

	for _, v := range data.Vehicles {
		if _, err := vehicleStmt.Exec(v.VehicleID, v.Name, v.Type, v.FuelEfficiency, v.FuelCostPerLiter, v.TollMultiplier); err != nil {
			return fmt.Errorf("seed catalog: insert vehicle_id=%d: %w", v.VehicleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}
