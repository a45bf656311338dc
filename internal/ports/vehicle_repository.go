package ports

import (
	"context"
	"errors"

	"route-cost-service/internal/domain"
)

// ErrVehicleNotFound marks a lookup for an unknown vehicle id.
var ErrVehicleNotFound = errors.New("vehicle not found")

// Port: a boundary for retrieving vehicle profiles from a data source.
type VehicleRepository interface {
	ListVehicles(ctx context.Context) ([]domain.VehicleProfile, error)
	GetVehicle(ctx context.Context, id int) (domain.VehicleProfile, error)
}
