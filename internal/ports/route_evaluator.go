package ports

import (
	"context"
	"errors"

	"route-cost-service/internal/domain"
)

// ErrUnavailable signals the external routing service could not be
// reached at all, as opposed to a single candidate failing. Adapters
// wrap it so the search can abort instead of burning every candidate.
var ErrUnavailable = errors.New("route evaluator unavailable")

// Evaluation of one concrete visiting order.
type RouteEvaluation struct {
	Legs                 []domain.RouteLeg
	TotalDistanceMeters  int
	TotalDurationSeconds int
	// Toll records surfaced directly by the routing provider, when it
	// exposes any. Most providers do not; nil is the common case.
	Tolls []domain.TollPoint
}

// Contract for the external map/routing collaborator.
//
// Implementations must evaluate the given order exactly as passed
// (waypoint optimization disabled); the search controls ordering.
type RouteEvaluator interface {
	EvaluateRoute(ctx context.Context, origin domain.Location, order []domain.Location) (*RouteEvaluation, error)
}
