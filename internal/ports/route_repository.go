package ports

import (
	"context"

	"route-cost-service/internal/domain"
)

// Port: persistence for planned route results.
type RouteRepository interface {
	// Persist a result and return its assigned id.
	SaveRoute(ctx context.Context, result *domain.RouteResult) (int, error)
	ListRoutes(ctx context.Context) ([]domain.StoredRoute, error)
}
