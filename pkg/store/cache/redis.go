package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/meridian-research/triad/internal/util"
	"github.com/meridian-research/triad/pkg/logger"
)

// RedisCache implements Cache on a Redis server.
type RedisCache struct {
	rdb *goredis.Client
}

// NewRedisCache connects to the Redis instance described by url
// ("redis://host:port/db") and pings it before returning.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisCache{rdb: rdb}, nil
}

// NewCacheFromEnv returns a RedisCache when REDIS_URL is set and reachable,
// and an in-process MemoryCache otherwise.
func NewCacheFromEnv(ctx context.Context) Cache {
	url := strings.TrimSpace(util.GetEnv("REDIS_URL"))
	if url == "" {
		logger.Info("REDIS_URL not set, using in-process cache")
		return NewMemoryCache()
	}
	redisCache, err := NewRedisCache(ctx, url)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-process cache", "error", err)
		return NewMemoryCache()
	}
	return redisCache
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Close releases the Redis connection.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
