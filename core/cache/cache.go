package cache

import (
	"context"
	"encoding/json"
	"time"

	"go-task-scheduler/core/config"
	"go-task-scheduler/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin JSON cache over redis. A nil *Cache is a no-op so callers
// never need to branch on whether redis is configured.
type Cache struct {
	client *redis.Client
}

// Init connects to redis. Returns nil (cache disabled) when the connection
// cannot be established; the API keeps working without it.
func Init(cfg *config.Config) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Cache:Init:PingFailed", "error", err, "addr", cfg.RedisAddr())
		return nil
	}

	logger.Info("Cache initialized", "addr", cfg.RedisAddr())
	return &Cache{client: client}
}

// Get unmarshals the cached value into dest. Returns false on miss.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Cache:Get:Error", "error", err, "key", key)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn("Cache:Get:Unmarshal", "error", err, "key", key)
		return false
	}
	return true
}

// Set stores value as JSON with a TTL.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("Cache:Set:Marshal", "error", err, "key", key)
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		logger.Warn("Cache:Set:Error", "error", err, "key", key)
	}
}

// Bump increments a version counter key and returns the new version.
// Versioned keys make invalidation a single INCR instead of a key scan.
func (c *Cache) Bump(ctx context.Context, key string) int64 {
	if c == nil {
		return 0
	}
	ver, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		logger.Warn("Cache:Bump:Error", "error", err, "key", key)
		return 0
	}
	return ver
}

// Version reads a version counter key, 0 when unset.
func (c *Cache) Version(ctx context.Context, key string) int64 {
	if c == nil {
		return 0
	}
	ver, err := c.client.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return ver
}
