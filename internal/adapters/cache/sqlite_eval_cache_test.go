package cache

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"route-cost-service/internal/domain"
	"route-cost-service/internal/ports"
)

func openEvalCacheDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE eval_cache (
		waypoint_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create eval_cache table: %v", err)
	}

	return db
}

func TestSqliteEvalCacheRoundTrip(t *testing.T) {
	c := NewSqliteEvalCache(openEvalCacheDB(t))
	ctx := context.Background()

	eval := &ports.RouteEvaluation{
		Legs: []domain.RouteLeg{{
			Start:           domain.Location{Name: "Dois Córregos"},
			End:             domain.Location{Name: "Jaú"},
			DistanceMeters:  24000,
			DurationSeconds: 1500,
			Instructions:    []string{"Siga por SP-225"},
		}},
		TotalDistanceMeters:  24000,
		TotalDurationSeconds: 1500,
	}

	if err := c.Put(ctx, "-48.38000,-22.36600|-48.55800,-22.29600", eval); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(ctx, "-48.38000,-22.36600|-48.55800,-22.29600")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if got.TotalDistanceMeters != 24000 || len(got.Legs) != 1 {
		t.Fatalf("unexpected cached evaluation: %+v", got)
	}
	if got.Legs[0].Instructions[0] != "Siga por SP-225" {
		t.Fatalf("instructions not preserved: %v", got.Legs[0].Instructions)
	}
}

func TestSqliteEvalCacheMiss(t *testing.T) {
	c := NewSqliteEvalCache(openEvalCacheDB(t))

	_, ok, err := c.Get(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("expected cache miss")
	}
}

func TestSqliteEvalCachePutOverwrites(t *testing.T) {
	c := NewSqliteEvalCache(openEvalCacheDB(t))
	ctx := context.Background()

	first := &ports.RouteEvaluation{TotalDistanceMeters: 100}
	second := &ports.RouteEvaluation{TotalDistanceMeters: 200}

	if err := c.Put(ctx, "k", first); err != nil {
		t.Fatalf("Put first: %v", err)
	}
	if err := c.Put(ctx, "k", second); err != nil {
		t.Fatalf("Put second: %v", err)
	}

	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.TotalDistanceMeters != 200 {
		t.Fatalf("expected overwritten value 200, got %d", got.TotalDistanceMeters)
	}
}

func TestSqliteEvalCacheRejectsEmptyKey(t *testing.T) {
	c := NewSqliteEvalCache(openEvalCacheDB(t))

	if err := c.Put(context.Background(), "", &ports.RouteEvaluation{}); err == nil {
		t.Fatalf("expected error for empty key")
	}
	if _, _, err := c.Get(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
