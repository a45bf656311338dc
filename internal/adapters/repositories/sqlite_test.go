package repositories

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	_ "modernc.org/sqlite"

	"route-cost-service/internal/domain"
	"route-cost-service/internal/ports"
)

const seedJSON = `{
  "tolls": [
    {"toll_id": 1, "name": "Pedágio Dois Córregos", "lat": -22.3672, "lng": -48.3692, "road_name": "SP-225", "cost": 12.90, "restrictions": ""},
    {"toll_id": 2, "name": "Pedágio Jaú", "lat": -22.2936, "lng": -48.5461, "road_name": "SP-225", "cost": 11.30, "restrictions": ""},
    {"toll_id": 3, "name": "Pedágio Ribeirão Preto", "lat": -21.2112, "lng": -47.7990, "road_name": "SP-255", "cost": 14.10, "restrictions": "sem caminhões acima de 3 eixos"}
  ],
  "vehicles": [
    {"vehicle_id": 1, "name": "Carro", "type": "car", "fuel_efficiency": 12.0, "fuel_cost_per_liter": 5.50, "toll_multiplier": 100},
    {"vehicle_id": 2, "name": "Caminhão 2 eixos", "type": "truck1", "fuel_efficiency": 4.5, "fuel_cost_per_liter": 6.10, "toll_multiplier": 200}
  ]
}`

func openSeededDB(t *testing.T) *sql.DB {
	t.Helper()

	dir := t.TempDir()
	db, err := sql.Open("sqlite", filepath.Join(dir, "routes.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	seedPath := filepath.Join(dir, "seed.json")
	if err := os.WriteFile(seedPath, []byte(seedJSON), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	if err := SeedFromJSON(db, seedPath); err != nil {
		t.Fatalf("seed from json: %v", err)
	}

	return db
}

func TestSqliteTollCatalogListsSeededTolls(t *testing.T) {
	db := openSeededDB(t)
	catalog := NewSqliteTollCatalog(db)

	tolls, err := catalog.ListTolls(context.Background())
	if err != nil {
		t.Fatalf("ListTolls: %v", err)
	}
	if len(tolls) != 3 {
		t.Fatalf("expected 3 tolls, got %d", len(tolls))
	}
	if tolls[0].Name != "Pedágio Dois Córregos" || tolls[0].RoadName != "SP-225" {
		t.Fatalf("unexpected first toll: %+v", tolls[0])
	}
	if tolls[2].Cost != 14.10 {
		t.Fatalf("expected cost 14.10 for toll 3, got %v", tolls[2].Cost)
	}
	if tolls[2].Restrictions == "" {
		t.Fatalf("expected restrictions kept for toll 3")
	}
}

func TestSqliteTollCatalogFiltersByRoad(t *testing.T) {
	db := openSeededDB(t)
	catalog := NewSqliteTollCatalog(db)
	ctx := context.Background()

	tolls, err := catalog.ListTollsByRoads(ctx, []string{"SP-225", "SP-225", "  "})
	if err != nil {
		t.Fatalf("ListTollsByRoads: %v", err)
	}
	if len(tolls) != 2 {
		t.Fatalf("expected 2 SP-225 tolls, got %d", len(tolls))
	}
	for _, toll := range tolls {
		if toll.RoadName != "SP-225" {
			t.Fatalf("unexpected road %q in filtered listing", toll.RoadName)
		}
	}

	tolls, err = catalog.ListTollsByRoads(ctx, nil)
	if err != nil {
		t.Fatalf("ListTollsByRoads with no roads: %v", err)
	}
	if len(tolls) != 0 {
		t.Fatalf("expected empty result for no roads, got %d", len(tolls))
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := openSeededDB(t)

	seedPath := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(seedPath, []byte(seedJSON), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	if err := SeedFromJSON(db, seedPath); err != nil {
		t.Fatalf("second seed pass: %v", err)
	}

	tolls, err := NewSqliteTollCatalog(db).ListTolls(context.Background())
	if err != nil {
		t.Fatalf("ListTolls: %v", err)
	}
	if len(tolls) != 3 {
		t.Fatalf("expected 3 tolls after reseed, got %d", len(tolls))
	}
}

func TestSeedRejectsInvalidVehicle(t *testing.T) {
	db := openSeededDB(t)

	bad := `{"tolls": [], "vehicles": [{"vehicle_id": 9, "name": "Quebrado", "type": "car", "fuel_efficiency": 0, "fuel_cost_per_liter": 5.0, "toll_multiplier": 100}]}`
	seedPath := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(seedPath, []byte(bad), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	if err := SeedFromJSON(db, seedPath); err == nil {
		t.Fatalf("expected error for vehicle with zero fuel efficiency")
	}
}

func TestSqliteVehicleRepositoryGetAndList(t *testing.T) {
	db := openSeededDB(t)
	repo := NewSqliteVehicleRepository(db)
	ctx := context.Background()

	vehicles, err := repo.ListVehicles(ctx)
	if err != nil {
		t.Fatalf("ListVehicles: %v", err)
	}
	if len(vehicles) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(vehicles))
	}

	truck, err := repo.GetVehicle(ctx, 2)
	if err != nil {
		t.Fatalf("GetVehicle(2): %v", err)
	}
	if truck.Type != domain.VehicleTruck1 || truck.TollMultiplier != 200 {
		t.Fatalf("unexpected truck profile: %+v", truck)
	}

	_, err = repo.GetVehicle(ctx, 99)
	if !errors.Is(err, ports.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestSqliteRouteRepositoryRoundTrip(t *testing.T) {
	db := openSeededDB(t)
	repo := NewSqliteRouteRepository(db)
	ctx := context.Background()

	result := &domain.RouteResult{
		OrderedWaypoints: []domain.Location{
			{ID: 1, Name: "Dois Córregos", IsOrigin: true},
			{ID: 3, Name: "Ribeirão Preto"},
			{ID: 4, Name: "Campinas"},
		},
		TotalDistanceMeters:  375000,
		TotalDurationSeconds: 16200,
		Costs: domain.CostBreakdown{
			FuelLiters: 31.25,
			FuelCost:   171.88,
			TollCost:   14.10,
			TotalCost:  185.98,
		},
	}

	id, err := repo.SaveRoute(ctx, result)
	if err != nil {
		t.Fatalf("SaveRoute: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive route id, got %d", id)
	}

	id2, err := repo.SaveRoute(ctx, result)
	if err != nil {
		t.Fatalf("SaveRoute second: %v", err)
	}

	stored, err := repo.ListRoutes(ctx)
	if err != nil {
		t.Fatalf("ListRoutes: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 stored routes, got %d", len(stored))
	}
	// Newest first.
	if stored[0].ID != id2 || stored[1].ID != id {
		t.Fatalf("expected ids [%d %d], got [%d %d]", id2, id, stored[0].ID, stored[1].ID)
	}

	got := stored[1]
	if !reflect.DeepEqual(got.WaypointIDs, []int{1, 3, 4}) {
		t.Fatalf("unexpected waypoint ids: %v", got.WaypointIDs)
	}
	if !reflect.DeepEqual(got.WaypointNames, []string{"Dois Córregos", "Ribeirão Preto", "Campinas"}) {
		t.Fatalf("unexpected waypoint names: %v", got.WaypointNames)
	}
	if got.TotalDistanceMeters != 375000 || got.TotalDurationSeconds != 16200 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if got.FuelCost != 171.88 || got.TollCost != 14.10 || got.TotalCost != 185.98 {
		t.Fatalf("unexpected costs: %+v", got)
	}
}

func TestSaveRouteRejectsNil(t *testing.T) {
	db := openSeededDB(t)
	repo := NewSqliteRouteRepository(db)

	if _, err := repo.SaveRoute(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
}
