package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"route-cost-service/internal/domain"
)

// SQLite-backed implementation of the RouteRepository port. Waypoint
// ids and names are stored as JSON arrays; the legs themselves are
// not persisted, only the route summary.
type SqliteRouteRepository struct{ DB *sql.DB }

func NewSqliteRouteRepository(db *sql.DB) *SqliteRouteRepository {
	return &SqliteRouteRepository{DB: db}
}

func (s *SqliteRouteRepository) SaveRoute(ctx context.Context, result *domain.RouteResult) (int, error) {
	if s.DB == nil {
		return 0, errors.New("sqlite route repository: DB is nil")
	}
	if result == nil {
		return 0, errors.New("save route: result must not be nil")
	}

	ids := make([]int, 0, len(result.OrderedWaypoints))
	names := make([]string, 0, len(result.OrderedWaypoints))
	for _, w := range result.OrderedWaypoints {
		ids = append(ids, w.ID)
		names = append(names, w.Name)
	}

	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return 0, fmt.Errorf("save route: encode waypoint ids: %w", err)
	}
	namesJSON, err := json.Marshal(names)
	if err != nil {
		return 0, fmt.Errorf("save route: encode waypoint names: %w", err)
	}

	query := `
	INSERT INTO routes (
		waypoint_ids,
		waypoint_names,
		total_distance_meters,
		total_duration_seconds,
		fuel_cost,
		toll_cost,
		total_cost
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	res, err := s.DB.ExecContext(ctx, query,
		string(idsJSON), string(namesJSON),
		result.TotalDistanceMeters, result.TotalDurationSeconds,
		result.Costs.FuelCost, result.Costs.TollCost, result.Costs.TotalCost,
	)
	if err != nil {
		return 0, fmt.Errorf("save route: insert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save route: last insert id: %w", err)
	}
	return int(id), nil
}

func (s *SqliteRouteRepository) ListRoutes(ctx context.Context) ([]domain.StoredRoute, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite route repository: DB is nil")
	}

	query := `
	SELECT
		route_id,
		waypoint_ids,
		waypoint_names,
		total_distance_meters,
		total_duration_seconds,
		fuel_cost,
		toll_cost,
		total_cost
	FROM routes
	ORDER BY route_id DESC;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list routes: query routes table: %w", err)
	}
	defer rows.Close()

	routes := make([]domain.StoredRoute, 0, 16)
	for rows.Next() {
		var r domain.StoredRoute
		var idsJSON, namesJSON string
		if err := rows.Scan(
			&r.ID, &idsJSON, &namesJSON,
			&r.TotalDistanceMeters, &r.TotalDurationSeconds,
			&r.FuelCost, &r.TollCost, &r.TotalCost,
		); err != nil {
			return nil, fmt.Errorf("list routes: scan row: %w", err)
		}

		if err := json.Unmarshal([]byte(idsJSON), &r.WaypointIDs); err != nil {
			return nil, fmt.Errorf("list routes: decode waypoint ids for route %d: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(namesJSON), &r.WaypointNames); err != nil {
			return nil, fmt.Errorf("list routes: decode waypoint names for route %d: %w", r.ID, err)
		}

		routes = append(routes, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}

	return routes, nil
}
