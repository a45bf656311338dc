package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"route-cost-service/internal/ports"
)

// Redis-backed cache of route evaluations, keyed by the exact
// waypoint sequence. Entries expire so stale road data eventually
// drops out.
type RedisEvalCache struct {
	Client *redis.Client
	TTL    time.Duration
}

const keyPrefix = "evalcache:"

func NewRedisEvalCache(client *redis.Client, ttl time.Duration) *RedisEvalCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisEvalCache{Client: client, TTL: ttl}
}

func (c *RedisEvalCache) Get(ctx context.Context, key string) (*ports.RouteEvaluation, bool, error) {
	if c.Client == nil {
		return nil, false, errors.New("eval cache: redis client is nil")
	}
	if key == "" {
		return nil, false, errors.New("get eval cache: key must not be empty")
	}

	payload, err := c.Client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get eval cache: %w", err)
	}

	var eval ports.RouteEvaluation
	if err := json.Unmarshal(payload, &eval); err != nil {
		return nil, false, fmt.Errorf("get eval cache: decode payload: %w", err)
	}
	return &eval, true, nil
}

func (c *RedisEvalCache) Put(ctx context.Context, key string, eval *ports.RouteEvaluation) error {
	if c.Client == nil {
		return errors.New("eval cache: redis client is nil")
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

	if err := c.Client.Set(ctx, keyPrefix+key, payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("put eval cache: %w", err)
	}
	return nil
}
