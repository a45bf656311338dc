package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"route-cost-service/internal/domain"
	"route-cost-service/internal/ports"
)

// SQLite-backed implementation of the VehicleRepository port.
type SqliteVehicleRepository struct{ DB *sql.DB }

func NewSqliteVehicleRepository(db *sql.DB) *SqliteVehicleRepository {
	return &SqliteVehicleRepository{DB: db}
}

func (s *SqliteVehicleRepository) ListVehicles(ctx context.Context) ([]domain.VehicleProfile, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite vehicle repository: DB is nil")
	}

	query := `
	SELECT
		vehicle_id,
		name,
		type,
		fuel_efficiency,
		fuel_cost_per_liter,
		toll_multiplier
	FROM vehicle_profiles
	ORDER BY vehicle_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query vehicle_profiles table: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.VehicleProfile, 0, 8)
	for rows.Next() {
		var v domain.VehicleProfile
		var vtype string
		if err := rows.Scan(&v.ID, &v.Name, &vtype, &v.FuelEfficiency, &v.FuelCostPerLiter, &v.TollMultiplier); err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		v.Type = domain.VehicleType(vtype)
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}

func (s *SqliteVehicleRepository) GetVehicle(ctx context.Context, id int) (domain.VehicleProfile, error) {
	if s.DB == nil {
		return domain.VehicleProfile{}, errors.New("sqlite vehicle repository: DB is nil")
	}

	query := `
	SELECT
		vehicle_id,
		name,
		type,
		fuel_efficiency,
		fuel_cost_per_liter,
		toll_multiplier
	FROM vehicle_profiles
	WHERE vehicle_id = ?;
	`

	var v domain.VehicleProfile
	var vtype string
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Name, &vtype, &v.FuelEfficiency, &v.FuelCostPerLiter, &v.TollMultiplier,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.VehicleProfile{}, fmt.Errorf("get vehicle id=%d: %w", id, ports.ErrVehicleNotFound)
	}
	if err != nil {
		return domain.VehicleProfile{}, fmt.Errorf("get vehicle id=%d: %w", id, err)
	}

	v.Type = domain.VehicleType(vtype)
	return v, nil
}
