package domain

import (
	"fmt"
	"math"
)

type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleTruck1     VehicleType = "truck1"
	VehicleTruck2     VehicleType = "truck2"
)

// Vehicle profile used for cost estimation. Selected by the user and
// mutable only through an explicit settings update that keeps identity.
type VehicleProfile struct {
	ID   int
	Name string
	Type VehicleType

	// Kilometers per liter.
	FuelEfficiency float64
	// Price of one liter of fuel.
	FuelCostPerLiter float64
	// Percentage applied to toll tariffs; 100 leaves them unmodified
	// (trucks with extra axles pay multiples of the base tariff).
	TollMultiplier float64
}

func (v VehicleProfile) Validate() error {
	if v.FuelEfficiency <= 0 || math.IsNaN(v.FuelEfficiency) || math.IsInf(v.FuelEfficiency, 0) {
		return fmt.Errorf("vehicle %q: fuelEfficiency must be a positive number, got %v", v.Name, v.FuelEfficiency)
	}
	if v.FuelCostPerLiter < 0 || math.IsNaN(v.FuelCostPerLiter) {
		return fmt.Errorf("vehicle %q: fuelCostPerLiter must be non-negative, got %v", v.Name, v.FuelCostPerLiter)
	}
	if v.TollMultiplier < 0 || math.IsNaN(v.TollMultiplier) {
		return fmt.Errorf("vehicle %q: tollMultiplier must be non-negative, got %v", v.Name, v.TollMultiplier)
	}
	switch v.Type {
	case VehicleCar, VehicleMotorcycle, VehicleTruck1, VehicleTruck2:
	default:
		return fmt.Errorf("vehicle %q: unknown type %q", v.Name, v.Type)
	}
	return nil
}
