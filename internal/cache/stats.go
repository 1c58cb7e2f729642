package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Statistics cache keys
const (
	KeyStatsOverview   = "stats:overview"
	KeyStatsByCategory = "stats:by_category"
	KeyStatsByLocation = "stats:by_location"
)

// GetJSON reads a cached JSON value into dest. Returns false on a miss or
// when Redis is not configured.
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if Client == nil {
		return false, nil
	}

	raw, err := Client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("failed to decode cached value for %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores v as JSON under key with the given TTL. A nil client is a
// no-op so callers never need to branch on cache availability.
func SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	if Client == nil {
		return nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}

	if err := Client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// InvalidateStats drops all cached statistics. Called after every asset
// write; a cache failure only delays freshness, so it is logged and swallowed.
func InvalidateStats(ctx context.Context) {
	if Client == nil {
		return
	}

	if err := Client.Del(ctx, KeyStatsOverview, KeyStatsByCategory, KeyStatsByLocation).Err(); err != nil {
		logrus.WithError(err).Warn("failed to invalidate stats cache")
	}
}
