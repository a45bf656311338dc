package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"route-cost-service/internal/adapters/routing"
	"route-cost-service/internal/domain"
)

type stubCatalog struct {
	tolls []domain.TollPoint
	err   error
}

func (s *stubCatalog) ListTolls(ctx context.Context) ([]domain.TollPoint, error) {
	return s.tolls, s.err
}

func TestPlannerEndToEnd(t *testing.T) {
	origin := domain.Location{
		ID: 1, Name: "Dois Córregos",
		Coords:   domain.Coordinates{Lat: -22.3731, Lon: -48.3796},
		IsOrigin: true,
	}
	rp := domain.Location{
		ID: 2, Name: "Ribeirão Preto",
		Address: "Ribeirão Preto - SP",
		Coords:  domain.Coordinates{Lat: -21.1704, Lon: -47.8103},
	}
	campinas := domain.Location{
		ID: 3, Name: "Campinas",
		Address: "Campinas - SP",
		Coords:  domain.Coordinates{Lat: -22.9071, Lon: -47.0632},
	}

	mock := routing.NewMockEvaluator()
	mock.SetLegs(origin, []domain.Location{rp, campinas}, []int{145000, 230000}, []int{7200, 10800})
	mock.SetLegs(origin, []domain.Location{campinas, rp}, []int{160000, 230000}, []int{7200, 10800})

	planner := NewPlanner(mock, &stubCatalog{tolls: testCatalog()}, SearchOptions{})

	result, err := planner.Plan(context.Background(), PlanRequest{
		Origin:       origin,
		Destinations: []domain.Location{rp, campinas},
		Vehicle:      carProfile(),
		Optimize:     true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.Calls) != 2 {
		t.Fatalf("expected both orderings evaluated, got %d calls", len(mock.Calls))
	}

	if result.OrderedWaypoints[0].Name != "Dois Córregos" {
		t.Fatalf("orderedWaypoints[0] = %q, want the origin", result.OrderedWaypoints[0].Name)
	}
	if result.OrderedWaypoints[1].Name != "Ribeirão Preto" {
		t.Fatalf("shorter ordering should win, got %q second", result.OrderedWaypoints[1].Name)
	}

	sum := 0
	for _, leg := range result.Legs {
		sum += leg.DistanceMeters
	}
	if result.TotalDistanceMeters != sum || sum != 375000 {
		t.Fatalf("totalDistance = %d, sum of legs = %d, want 375000", result.TotalDistanceMeters, sum)
	}

	// The Ribeirão Preto address correlates the SP-255 plaza.
	if len(result.MatchedTolls) != 1 || result.MatchedTolls[0].Name != "Praça de Pedágio SP-255 Ribeirão Preto" {
		t.Fatalf("matchedTolls = %+v, want the Ribeirão Preto plaza", result.MatchedTolls)
	}

	// 375 km at 12 km/l, R$5.50/l, plus the R$12.70 plaza.
	if math.Abs(result.Costs.FuelLiters-31.25) > 1e-9 {
		t.Fatalf("fuelLiters = %v, want 31.25", result.Costs.FuelLiters)
	}
	if math.Abs(result.Costs.TollCost-12.7) > 1e-9 {
		t.Fatalf("tollCost = %v, want 12.7", result.Costs.TollCost)
	}
	if math.Abs(result.Costs.TotalCost-(31.25*5.5+12.7)) > 1e-9 {
		t.Fatalf("totalCost = %v", result.Costs.TotalCost)
	}

	if result.Degraded {
		t.Fatal("successful optimization must not be degraded")
	}
	if planner.Current() != result {
		t.Fatal("completed run must become the current displayed route")
	}
}

func TestPlannerDegradedFallback(t *testing.T) {
	origin := originLoc()
	a := loc("A", -22.0, -48.0)
	b := loc("B", -21.5, -47.5)

	mock := routing.NewMockEvaluator() // every evaluation fails

	planner := NewPlanner(mock, &stubCatalog{}, SearchOptions{})

	result, err := planner.Plan(context.Background(), PlanRequest{
		Origin:                    origin,
		Destinations:              []domain.Location{a, b},
		Vehicle:                   carProfile(),
		Optimize:                  true,
		FixedTotalDistanceMeters:  50000,
		FixedTotalDurationSeconds: 2400,
	})
	if err != nil {
		t.Fatalf("fallback must not error: %v", err)
	}

	if !result.Degraded {
		t.Fatal("fallback result must be tagged degraded")
	}
	if result.Warning == "" {
		t.Fatal("fallback result must carry a user-visible warning")
	}
	if len(result.Legs) != 0 {
		t.Fatal("fallback result has no legs")
	}
	if result.OrderedWaypoints[1].Name != "A" || result.OrderedWaypoints[2].Name != "B" {
		t.Fatal("fallback must keep the unmodified input order")
	}
	if result.TotalDistanceMeters != 50000 {
		t.Fatalf("fallback should use the fixed totals, got %d", result.TotalDistanceMeters)
	}
}

func TestPlannerManualOrderPreserved(t *testing.T) {
	origin := originLoc()
	a := loc("A", -22.0, -48.0)
	b := loc("B", -21.5, -47.5)

	mock := routing.NewMockEvaluator()
	// Only the caller's exact order is scripted; the planner must not
	// try any other.
	mock.SetLegs(origin, []domain.Location{b, a}, []int{300, 300}, []int{60, 60})

	planner := NewPlanner(mock, &stubCatalog{}, SearchOptions{})

	result, err := planner.Plan(context.Background(), PlanRequest{
		Origin:       origin,
		Destinations: []domain.Location{b, a},
		Vehicle:      carProfile(),
		Optimize:     false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Fatalf("manual order takes exactly one evaluation, got %d", len(mock.Calls))
	}
	if result.Degraded {
		t.Fatal("a deliberate manual order is not a degraded result")
	}
	if result.OrderedWaypoints[1].Name != "B" {
		t.Fatal("manual order must be preserved")
	}
}

func TestPlannerInvalidInput(t *testing.T) {
	notOrigin := loc("X", -22.0, -48.0)

	planner := NewPlanner(routing.NewMockEvaluator(), &stubCatalog{}, SearchOptions{})

	_, err := planner.Plan(context.Background(), PlanRequest{
		Origin:  notOrigin,
		Vehicle: carProfile(),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestPlannerStaleRunDoesNotOverwrite(t *testing.T) {
	origin := originLoc()
	a := loc("A", -22.0, -48.0)
	b := loc("B", -21.5, -47.5)

	mock := routing.NewMockEvaluator()
	mock.SetLegs(origin, []domain.Location{a}, []int{100}, []int{60})
	mock.SetLegs(origin, []domain.Location{b}, []int{200}, []int{120})

	var planner *Planner
	var newerResult *domain.RouteResult
	var nested bool

	// The progress hook fires mid-search of the first run and starts a
	// second run, superseding the first one's generation.
	opts := SearchOptions{Progress: func(done, total int) {
		if nested || newerResult != nil {
			return
		}
		nested = true
		defer func() { nested = false }()
		r, err := planner.Plan(context.Background(), PlanRequest{
			Origin:       origin,
			Destinations: []domain.Location{b},
			Vehicle:      carProfile(),
			Optimize:     true,
		})
		if err != nil {
			t.Fatalf("nested run failed: %v", err)
		}
		newerResult = r
	}}
	planner = NewPlanner(mock, &stubCatalog{}, opts)

	stale, err := planner.Plan(context.Background(), PlanRequest{
		Origin:       origin,
		Destinations: []domain.Location{a},
		Vehicle:      carProfile(),
		Optimize:     true,
	})
	if err != nil {
		t.Fatalf("stale run failed: %v", err)
	}

	current := planner.Current()
	if current == stale {
		t.Fatal("superseded run must not overwrite the displayed route")
	}
	if current != newerResult {
		t.Fatal("displayed route must be the newest run's result")
	}
}
