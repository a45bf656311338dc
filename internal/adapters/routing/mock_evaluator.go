package routing

import (
	"context"
	"fmt"
	"strings"

	"route-cost-service/internal/domain"
	"route-cost-service/internal/ports"
)

// MockEvaluator scripts route evaluations per visiting order for
// deterministic tests. Orders are keyed by origin and waypoint names.
type MockEvaluator struct {
	Results map[string]*ports.RouteEvaluation
	Errs    map[string]error
	// DefaultErr is returned for any order without a scripted result.
	DefaultErr error
	Calls     []string
}

func NewMockEvaluator() *MockEvaluator {
	return &MockEvaluator{
		Results:    make(map[string]*ports.RouteEvaluation),
		Errs:       make(map[string]error),
		DefaultErr: fmt.Errorf("no scripted evaluation"),
	}
}

func OrderKey(origin domain.Location, order []domain.Location) string {
	parts := make([]string, 0, 1+len(order))
	parts = append(parts, origin.Name)
	for _, l := range order {
		parts = append(parts, l.Name)
	}
	return strings.Join(parts, "|")
}

// SetLegs scripts a successful evaluation whose legs run origin ->
// order[0] -> ... with the given per-leg distances and durations.
func (m *MockEvaluator) SetLegs(origin domain.Location, order []domain.Location, meters []int, seconds []int) {
	legs := make([]domain.RouteLeg, 0, len(order))
	totalMeters, totalSeconds := 0, 0
	prev := origin
	for i, stop := range order {
		legs = append(legs, domain.RouteLeg{
			Start:           prev,
			End:             stop,
			DistanceMeters:  meters[i],
			DurationSeconds: seconds[i],
		})
		totalMeters += meters[i]
		totalSeconds += seconds[i]
		prev = stop
	}
	m.Results[OrderKey(origin, order)] = &ports.RouteEvaluation{
		Legs:                 legs,
		TotalDistanceMeters:  totalMeters,
		TotalDurationSeconds: totalSeconds,
	}
}

func (m *MockEvaluator) SetErr(origin domain.Location, order []domain.Location, err error) {
	m.Errs[OrderKey(origin, order)] = err
}

func (m *MockEvaluator) EvaluateRoute(ctx context.Context, origin domain.Location, order []domain.Location) (*ports.RouteEvaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := OrderKey(origin, order)
	m.Calls = append(m.Calls, key)

	if err, ok := m.Errs[key]; ok {
		return nil, err
	}
	if eval, ok := m.Results[key]; ok {
		return eval, nil
	}
	return nil, fmt.Errorf("mock evaluator: %q: %w", key, m.DefaultErr)
}
