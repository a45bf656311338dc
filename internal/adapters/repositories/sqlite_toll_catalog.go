package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"route-cost-service/internal/domain"
)

// SQLite-backed implementation of the TollCatalog port.
type SqliteTollCatalog struct{ DB *sql.DB }

func NewSqliteTollCatalog(db *sql.DB) *SqliteTollCatalog {
	return &SqliteTollCatalog{DB: db}
}

// Return all toll points stored in the database.
func (s *SqliteTollCatalog) ListTolls(ctx context.Context) ([]domain.TollPoint, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite toll catalog: DB is nil")
	}

	query := `
	SELECT
		toll_id,
		name,
		lat,
		lng,
		road_name,
		cost,
		restrictions
	FROM toll_points
	ORDER BY toll_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
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
// the given road names.
func (s *SqliteTollCatalog) ListTollsByRoads(ctx context.Context, roads []string) ([]domain.TollPoint, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite toll catalog: DB is nil")
	}

	uniq := dedupRoads(roads)
	if len(uniq) == 0 {
		return []domain.TollPoint{}, nil
	}

	placeholders := strings.Repeat("?, ", len(uniq))
	placeholders = placeholders[:len(placeholders)-2]
	query := fmt.Sprintf(`
	SELECT toll_id, name, lat, lng, road_name, cost, restrictions
	FROM toll_points
	WHERE road_name IN (%s)
	ORDER BY toll_id;
	`, placeholders)

	args := make([]any, 0, len(uniq))
	for _, r := range uniq {
		args = append(args, r)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
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

// dedupRoads trims and deduplicates road names, preserving order.
func dedupRoads(roads []string) []string {
	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(roads))
	for _, r := range roads {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		uniq = append(uniq, r)
	}
	return uniq
}
