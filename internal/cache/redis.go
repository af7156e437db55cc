package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/synapselink/backend/internal/config"
)

// LeaderboardTTL bounds staleness of cached rankings; mutations also
// invalidate eagerly, the TTL is the backstop.
const LeaderboardTTL = time.Hour

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	return c.Client.Del(ctx, keys...).Err()
}

// KeyForLeaderboard generates the Redis key for a cached leaderboard payload.
func (c *RedisCache) KeyForLeaderboard(kind string) string {
	return fmt.Sprintf("leaderboard:%s", kind)
}

// GetLeaderboard returns the cached JSON payload for a leaderboard kind,
// or "" on cache miss.
func (c *RedisCache) GetLeaderboard(ctx context.Context, kind string) (string, error) {
	val, err := c.Client.Get(ctx, c.KeyForLeaderboard(kind)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	} else if err != nil {
		return "", err
	}
	return val, nil
}

// SetLeaderboard stores a computed leaderboard payload with the standard TTL.
func (c *RedisCache) SetLeaderboard(ctx context.Context, kind, payload string) error {
	return c.Client.Set(ctx, c.KeyForLeaderboard(kind), payload, LeaderboardTTL).Err()
}

// InvalidateLeaderboard drops the cached payloads for the given kinds.
// Called after any mutation that changes endorsements or connections.
func (c *RedisCache) InvalidateLeaderboard(ctx context.Context, kinds ...string) error {
	keys := make([]string, 0, len(kinds))
	for _, k := range kinds {
		keys = append(keys, c.KeyForLeaderboard(k))
	}
	return c.Client.Del(ctx, keys...).Err()
}
