package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"route-cost-service/internal/domain"
	"route-cost-service/internal/platform/obs"
)

// Postgres-backed implementation of the TollCatalog port, for
// deployments that share one catalog across instances.
type PgTollCatalog struct{ DB *sql.DB }

func NewPgTollCatalog(db *sql.DB) *PgTollCatalog {
	return &PgTollCatalog{DB: db}
}

func (p *PgTollCatalog) ListTolls(ctx context.Context) (_ []domain.TollPoint, err error) {
	defer obs.Time(ctx, "pg.catalog.ListTolls")(&err)

	if p.DB == nil {
		return nil, errors.New("pg toll catalog: DB is nil")
	}

	q := `
	SELECT toll_id, name, lat, lng, road_name, cost, restrictions
	FROM toll_points
	ORDER BY toll_id;
	`
	rows, err := p.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list tolls: query toll_points table: %w", err)
	}
	defer rows.Close()

	tolls := make([]domain.TollPoint, 0, 64)
	for rows.Next() {
		var t domain.TollPoint
		if err := rows.Scan(&t.ID, &t.Name, &t.Lat, &t.Lng, &t.RoadName, &t.Cost, &t.Restrictions); err != nil {
			return nil, fmt.Errorf("list tolls: scan row: %w", err)
		}
		tolls = append(tolls, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tolls: row iteration: %w", err)
	}

	return tolls, nil
}

// ListTollsByRoads returns only the catalog tolls tagged with one of
// the given road names, for callers that pre-filter by highway code.
func (p *PgTollCatalog) ListTollsByRoads(ctx context.Context, roads []string) (_ []domain.TollPoint, err error) {
	defer obs.Time(ctx, "pg.catalog.ListTollsByRoads")(&err)

	if p.DB == nil {
		return nil, errors.New("pg toll catalog: DB is nil")
	}

	uniq := dedupRoads(roads)
	if len(uniq) == 0 {
		return []domain.TollPoint{}, nil
	}

	q := `
	SELECT toll_id, name, lat, lng, road_name, cost, restrictions
	FROM toll_points
	WHERE road_name = ANY($1::text[])
	ORDER BY toll_id;
	`
	rows, err := p.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("list tolls by roads: query toll_points table: %w", err)
	}
	defer rows.Close()

	tolls := make([]domain.TollPoint, 0, len(uniq))
	for rows.Next() {
		var t domain.TollPoint
		if err := rows.Scan(&t.ID, &t.Name, &t.Lat, &t.Lng, &t.RoadName, &t.Cost, &t.Restrictions); err != nil {
			return nil, fmt.Errorf("list tolls by roads: scan row: %w", err)
		}
		tolls = append(tolls, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tolls by roads: row iteration: %w", err)
	}

	return tolls, nil
}
