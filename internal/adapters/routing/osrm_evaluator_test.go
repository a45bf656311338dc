package routing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"route-cost-service/internal/domain"
	"route-cost-service/internal/ports"
)

const osrmTwoLegResponse = `{
	"code": "Ok",
	"routes": [{
		"distance": 375000.4,
		"duration": 18000.2,
		"legs": [
			{
				"distance": 145000.1,
				"duration": 7200.1,
				"steps": [
					{"name": "", "ref": "SP-225", "maneuver": {"type": "depart"}},
					{"name": "Rodovia Anhanguera", "ref": "SP-330", "maneuver": {"type": "turn", "modifier": "right"}},
					{"name": "", "maneuver": {"type": "arrive"}}
				]
			},
			{
				"distance": 230000.3,
				"duration": 10800.1,
				"steps": [
					{"name": "Avenida Central", "maneuver": {"type": "depart"}},
					{"name": "", "maneuver": {"type": "arrive"}}
				]
			}
		]
	}]
}`

type memEvalCache struct {
	m map[string]*ports.RouteEvaluation
}

func newMemEvalCache() *memEvalCache {
	return &memEvalCache{m: make(map[string]*ports.RouteEvaluation)}
}

func (c *memEvalCache) Get(ctx context.Context, key string) (*ports.RouteEvaluation, bool, error) {
	eval, ok := c.m[key]
	return eval, ok, nil
}

func (c *memEvalCache) Put(ctx context.Context, key string, eval *ports.RouteEvaluation) error {
	c.m[key] = eval
	return nil
}

func testStops() (domain.Location, []domain.Location) {
	origin := domain.Location{Name: "Dois Córregos", Coords: domain.Coordinates{Lat: -22.3731, Lon: -48.3796}, IsOrigin: true}
	order := []domain.Location{
		{Name: "Ribeirão Preto", Coords: domain.Coordinates{Lat: -21.1704, Lon: -47.8103}},
		{Name: "Campinas", Coords: domain.Coordinates{Lat: -22.9071, Lon: -47.0632}},
	}
	return origin, order
}

func TestOSRMEvaluateRouteDecodesLegs(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(osrmTwoLegResponse))
	}))
	defer srv.Close()

	cache := newMemEvalCache()
	ev := NewOSRMEvaluator(srv.URL, cache)
	origin, order := testStops()

	eval, err := ev.EvaluateRoute(context.Background(), origin, order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eval.TotalDistanceMeters != 375000 {
		t.Fatalf("total distance = %d, want 375000", eval.TotalDistanceMeters)
	}
	if len(eval.Legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(eval.Legs))
	}
	if eval.Legs[0].Start.Name != "Dois Córregos" || eval.Legs[0].End.Name != "Ribeirão Preto" {
		t.Fatalf("leg 0 endpoints wrong: %q -> %q", eval.Legs[0].Start.Name, eval.Legs[0].End.Name)
	}
	if eval.Legs[0].DistanceMeters != 145000 {
		t.Fatalf("leg 0 distance = %d, want 145000", eval.Legs[0].DistanceMeters)
	}

	// Road refs must survive into the instruction text for toll
	// correlation.
	if eval.Legs[0].Instructions[0] != "Siga por SP-225" {
		t.Fatalf("instruction = %q", eval.Legs[0].Instructions[0])
	}
	if eval.Legs[0].Instructions[1] != "Continue em Rodovia Anhanguera (SP-330)" {
		t.Fatalf("instruction = %q", eval.Legs[0].Instructions[1])
	}

	// Second call for the same sequence must come from the cache.
	if _, err := ev.EvaluateRoute(context.Background(), origin, order); err != nil {
		t.Fatalf("cached call failed: %v", err)
	}
	if hits != 1 {
		t.Fatalf("expected 1 upstream hit, got %d", hits)
	}
}

func TestOSRMEvaluateRouteNoRouteIsCandidateFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code": "NoRoute", "message": "No route found", "routes": []}`))
	}))
	defer srv.Close()

	ev := NewOSRMEvaluator(srv.URL, nil)
	origin, order := testStops()

	_, err := ev.EvaluateRoute(context.Background(), origin, order)
	if err == nil {
		t.Fatal("expected an error for code=NoRoute")
	}
	if errors.Is(err, ports.ErrUnavailable) {
		t.Fatal("a routable-waypoint failure must not look like an outage")
	}
}

func TestOSRMEvaluateRouteUnreachableIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	ev := NewOSRMEvaluator(srv.URL, nil)
	origin, order := testStops()

	_, err := ev.EvaluateRoute(context.Background(), origin, order)
	if !errors.Is(err, ports.ErrUnavailable) {
		t.Fatalf("err = %v, want ports.ErrUnavailable", err)
	}
}

func TestOSRMEvaluateRouteEmptyOrder(t *testing.T) {
	ev := NewOSRMEvaluator("http://127.0.0.1:1", nil)
	origin, _ := testStops()

	if _, err := ev.EvaluateRoute(context.Background(), origin, nil); err == nil {
		t.Fatal("expected an error for an empty order")
	}
}
