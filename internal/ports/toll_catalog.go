package ports

import (
	"context"

	"route-cost-service/internal/domain"
)

// Port: a boundary for retrieving the known toll point catalog.
type TollCatalog interface {
	// Return every catalog toll point available for matching.
	ListTolls(ctx context.Context) ([]domain.TollPoint, error)
}

// Optional catalog capability: push road-name filtering into the
// store. Callers fall back to filtering ListTolls in memory when the
// catalog does not implement it.
type RoadFilteredTollCatalog interface {
	ListTollsByRoads(ctx context.Context, roads []string) ([]domain.TollPoint, error)
}
