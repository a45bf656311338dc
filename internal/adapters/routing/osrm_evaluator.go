package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"route-cost-service/internal/domain"
	"route-cost-service/internal/platform/obs"
	"route-cost-service/internal/ports"
)

// OSRMEvaluator implements RouteEvaluator against the OSRM route
// service.
//
// It coordinates:
//   - Waypoint-exact routing (OSRM never reorders waypoints, which is
//     what the permutation search requires)
//   - Turn-by-turn step decoding into instruction text for toll
//     detection
//   - A persistent evaluation cache keyed by the waypoint sequence
//   - External API calls with retry/backoff
//
// The evaluator is safe for concurrent use.
type OSRMEvaluator struct {
	session *http.Client
	baseURL string
	profile string
	cache   ports.EvalCache
}

func NewOSRMEvaluator(baseURL string, cache ports.EvalCache) *OSRMEvaluator {
	if baseURL == "" {
		baseURL = "https://router.project-osrm.org"
	}
	return &OSRMEvaluator{
		session: &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: "driving",
		cache:   cache,
	}
}

type osrmManeuver struct {
	Type     string    `json:"type"`
	Modifier string    `json:"modifier"`
	Location []float64 `json:"location"`
}

type osrmStep struct {
	Name     string       `json:"name"`
	Ref      string       `json:"ref"`
	Maneuver osrmManeuver `json:"maneuver"`
}

type osrmLeg struct {
	Distance float64    `json:"distance"`
	Duration float64    `json:"duration"`
	Steps    []osrmStep `json:"steps"`
}

type osrmRoute struct {
	Distance float64   `json:"distance"`
	Duration float64   `json:"duration"`
	Legs     []osrmLeg `json:"legs"`
}

type osrmRouteResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Routes  []osrmRoute `json:"routes"`
}

// EvaluateRoute scores one exact visiting order.
//
// Transport-level failures surface as ports.ErrUnavailable so the
// search can abort; an OSRM "no route" answer is a per-candidate
// failure the search may skip.
func (o *OSRMEvaluator) EvaluateRoute(
	ctx context.Context,
	origin domain.Location,
	order []domain.Location,
) (_ *ports.RouteEvaluation, err error) {
	defer obs.Time(ctx, "osrm.EvaluateRoute")(&err)

	if len(order) == 0 {
		return nil, errors.New("evaluate route: order must contain at least one destination")
	}

	key := cacheKey(origin, order)
	if o.cache != nil {
		cached, ok, cacheErr := o.cache.Get(ctx, key)
		if cacheErr != nil {
			log.Printf("eval cache read failed: %v", cacheErr)
		} else if ok {
			return cached, nil
		}
	}

	url := fmt.Sprintf(
		"%s/route/v1/%s/%s?overview=false&steps=true&alternatives=false",
		o.baseURL, o.profile, coordinatePath(origin, order),
	)

	resp, err := o.doWithRetry(ctx, url)
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) && he.Code < 500 {
			// OSRM answers 400 for unroutable waypoints; that is a
			// candidate-level failure, not an outage.
			return nil, fmt.Errorf("evaluate route: %w", err)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("evaluate route: %v: %w", err, ports.ErrUnavailable)
	}
	defer resp.Body.Close()

	var parsed osrmRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("evaluate route: decode response: %w", err)
	}

	if parsed.Code != "Ok" {
		return nil, fmt.Errorf("evaluate route: osrm code=%q message=%q", parsed.Code, parsed.Message)
	}
	if len(parsed.Routes) == 0 {
		return nil, errors.New("evaluate route: osrm returned no routes")
	}

	eval, err := evaluationFrom(parsed.Routes[0], origin, order)
	if err != nil {
		return nil, fmt.Errorf("evaluate route: %w", err)
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, key, eval); err != nil {
			log.Printf("eval cache write failed: %v", err)
		}
	}

	return eval, nil
}

// evaluationFrom maps an OSRM route onto domain legs. OSRM returns one
// leg per consecutive waypoint pair, in the requested order.
func evaluationFrom(route osrmRoute, origin domain.Location, order []domain.Location) (*ports.RouteEvaluation, error) {
	if len(route.Legs) != len(order) {
		return nil, fmt.Errorf("expected %d legs, got %d", len(order), len(route.Legs))
	}

	stops := make([]domain.Location, 0, 1+len(order))
	stops = append(stops, origin)
	stops = append(stops, order...)

	legs := make([]domain.RouteLeg, 0, len(route.Legs))
	for i, rl := range route.Legs {
		instructions := make([]string, 0, len(rl.Steps))
		for _, s := range rl.Steps {
			if text := stepInstruction(s); text != "" {
				instructions = append(instructions, text)
			}
		}
		legs = append(legs, domain.RouteLeg{
			Start:           stops[i],
			End:             stops[i+1],
			DistanceMeters:  int(math.Round(rl.Distance)),
			DurationSeconds: int(math.Round(rl.Duration)),
			Instructions:    instructions,
		})
	}

	return &ports.RouteEvaluation{
		Legs:                 legs,
		TotalDistanceMeters:  int(math.Round(route.Distance)),
		TotalDurationSeconds: int(math.Round(route.Duration)),
	}, nil
}

// stepInstruction renders one OSRM step as instruction text. The road
// ref is kept verbatim so highway identifiers like "SP-225" survive
// for toll correlation.
func stepInstruction(s osrmStep) string {
	road := s.Name
	if s.Ref != "" {
		if road != "" {
			road = road + " (" + s.Ref + ")"
		} else {
			road = s.Ref
		}
	}

	switch s.Maneuver.Type {
	case "depart":
		if road == "" {
			return "Siga em frente"
		}
		return "Siga por " + road
	case "arrive":
		return "Chegue ao destino"
	default:
		if road == "" {
			return ""
		}
		return "Continue em " + road
	}
}

// cacheKey builds a stable key from the exact waypoint sequence,
// rounded to ~1m precision.
func cacheKey(origin domain.Location, order []domain.Location) string {
	var b strings.Builder
	writeCoord(&b, origin.Coords)
	for _, l := range order {
		b.WriteByte('|')
		writeCoord(&b, l.Coords)
	}
	return b.String()
}

func writeCoord(b *strings.Builder, c domain.Coordinates) {
	fmt.Fprintf(b, "%.5f,%.5f", c.Lon, c.Lat)
}

// coordinatePath renders the OSRM lon,lat;lon,lat waypoint path.
func coordinatePath(origin domain.Location, order []domain.Location) string {
	parts := make([]string, 0, 1+len(order))
	parts = append(parts, fmt.Sprintf("%f,%f", origin.Coords.Lon, origin.Coords.Lat))
	for _, l := range order {
		parts = append(parts, fmt.Sprintf("%f,%f", l.Coords.Lon, l.Coords.Lat))
	}
	return strings.Join(parts, ";")
}
