package services

import (
	"fmt"
	"math"

	"route-cost-service/internal/domain"
)

// EstimateCost derives the fuel and toll cost breakdown for a route.
//
// Pure arithmetic over total distance, a vehicle profile and the
// matched toll set: no I/O, no side effects. It fails only on invalid
// numeric input, which is a programming error on the caller's side
// rather than a recoverable runtime condition.
func EstimateCost(
	totalDistanceMeters int,
	vehicle domain.VehicleProfile,
	matchedTolls []domain.TollPoint,
) (domain.CostBreakdown, error) {
	if totalDistanceMeters < 0 {
		return domain.CostBreakdown{}, fmt.Errorf(
			"estimate cost: distance must be non-negative, got %d: %w",
			totalDistanceMeters, ErrInvalidInput,
		)
	}
	if err := vehicle.Validate(); err != nil {
		return domain.CostBreakdown{}, fmt.Errorf("estimate cost: %v: %w", err, ErrInvalidInput)
	}

	fuelLiters := (float64(totalDistanceMeters) / 1000.0) / vehicle.FuelEfficiency
	fuelCost := fuelLiters * vehicle.FuelCostPerLiter

	tollSum := 0.0
	for _, t := range matchedTolls {
		if t.Cost < 0 || math.IsNaN(t.Cost) {
			return domain.CostBreakdown{}, fmt.Errorf(
				"estimate cost: toll %q has invalid cost %v: %w", t.Name, t.Cost, ErrInvalidInput,
			)
		}
		tollSum += t.Cost
	}
	tollCost := tollSum * (vehicle.TollMultiplier / 100.0)

	return domain.CostBreakdown{
		FuelLiters: fuelLiters,
		FuelCost:   fuelCost,
		TollCost:   tollCost,
		TotalCost:  fuelCost + tollCost,
	}, nil
}
