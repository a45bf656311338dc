package services

import (
	"route-cost-service/internal/domain"
)

// Assemble combines a winning order, its matched tolls and the cost
// breakdown into the immutable RouteResult the view layer consumes.
//
// Slices are copied so later mutation of the inputs cannot reach the
// result. Assembly has no failure logic of its own: upstream errors
// must be resolved before this point.
func Assemble(
	origin domain.Location,
	order *domain.CandidateOrder,
	tolls []domain.TollPoint,
	costs domain.CostBreakdown,
) *domain.RouteResult {
	waypoints := make([]domain.Location, 0, 1+len(order.Waypoints))
	waypoints = append(waypoints, origin)
	waypoints = append(waypoints, order.Waypoints...)

	legs := make([]domain.RouteLeg, len(order.Legs))
	copy(legs, order.Legs)

	matched := make([]domain.TollPoint, len(tolls))
	copy(matched, tolls)

	return &domain.RouteResult{
		OrderedWaypoints:     waypoints,
		Legs:                 legs,
		TotalDistanceMeters:  order.TotalDistanceMeters,
		TotalDurationSeconds: order.TotalDurationSeconds,
		MatchedTolls:         matched,
		Costs:                costs,
		Degraded:             order.Unoptimized,
	}
}
