package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"route-cost-service/internal/domain"
	"route-cost-service/internal/ports"
)

func newTestCache(t *testing.T) *RedisEvalCache {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisEvalCache(client, time.Hour)
}

func TestRedisEvalCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	eval := &ports.RouteEvaluation{
		Legs: []domain.RouteLeg{{
			Start:           domain.Location{Name: "Dois Córregos"},
			End:             domain.Location{Name: "Jaú"},
			DistanceMeters:  30000,
			DurationSeconds: 1500,
			Instructions:    []string{"Siga por SP-225"},
		}},
		TotalDistanceMeters:  30000,
		TotalDurationSeconds: 1500,
	}

	if err := c.Put(ctx, "k1", eval); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, ok, err := c.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.TotalDistanceMeters != 30000 || len(got.Legs) != 1 {
		t.Fatalf("round-trip lost data: %+v", got)
	}
	if got.Legs[0].Instructions[0] != "Siga por SP-225" {
		t.Fatalf("instructions lost: %+v", got.Legs[0])
	}
}

func TestRedisEvalCacheMiss(t *testing.T) {
	c := newTestCache(t)

	_, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected a miss for an absent key")
	}
}

func TestRedisEvalCacheEmptyKey(t *testing.T) {
	c := newTestCache(t)

	if _, _, err := c.Get(context.Background(), ""); err == nil {
		t.Fatal("empty key must be rejected")
	}
	if err := c.Put(context.Background(), "", &ports.RouteEvaluation{}); err == nil {
		t.Fatal("empty key must be rejected")
	}
}
