package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"route-cost-service/internal/ports"
)

// SQLite-backed cache of route evaluations for deployments without
// Redis. Keys are expected to be consistent (already normalized) by
// the caller; the evaluation is stored as a JSON payload.
type SqliteEvalCache struct {
	DB *sql.DB
}

func NewSqliteEvalCache(db *sql.DB) *SqliteEvalCache {
	return &SqliteEvalCache{DB: db}
}

func (s *SqliteEvalCache) Get(ctx context.Context, key string) (*ports.RouteEvaluation, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("eval cache: db is nil")
	}
	if key == "" {
		return nil, false, errors.New("get eval cache: key must not be empty")
	}

	q := `
	SELECT payload
	FROM eval_cache
	WHERE waypoint_key = ?;
	`

	var payload []byte
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get eval cache: query eval_cache table: %w", err)
	}

	var eval ports.RouteEvaluation
	if err := json.Unmarshal(payload, &eval); err != nil {
		return nil, false, fmt.Errorf("get eval cache: decode payload: %w", err)
	}
	return &eval, true, nil
}

func (s *SqliteEvalCache) Put(ctx context.Context, key string, eval *ports.RouteEvaluation) error {
	if s.DB == nil {
		return errors.New("eval cache: db is nil")
	}
	if key == "" {
		return errors.New("put eval cache: key must not be empty")
	}
	if eval == nil {
		return errors.New("put eval cache: evaluation must not be nil")
	}

	payload, err := json.Marshal(eval)
	if err != nil {
		return fmt.Errorf("put eval cache: encode payload: %w", err)
	}

	q := `
	INSERT OR REPLACE INTO eval_cache (waypoint_key, payload)
	VALUES (?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q, key, payload); err != nil {
		return fmt.Errorf("put eval cache key=%q: %w", key, err)
	}
	return nil
}
