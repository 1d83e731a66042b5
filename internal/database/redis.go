package database

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	applog "github.com/pushp314/tradeacademy-backend/pkg/logger"
)

// NewRedis connects to Redis. It returns a nil client when addr is empty or
// the server is unreachable; callers treat a nil client as "no cache".
func NewRedis(ctx context.Context, addr, password string) *redis.Client {
	if addr == "" {
		applog.Warn().Msg("REDIS_ADDR not set, caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		applog.Warn().Err(err).Msg("Failed to connect to Redis, caching disabled")
		_ = client.Close()
		return nil
	}

	applog.Info().Str("addr", addr).Msg("Connected to Redis successfully")
	return client
}

// ErrCacheMiss is returned by Cache.Get when the key is absent or the cache
// is disabled.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores JSON values in Redis. A Cache with a nil client is valid and
// always misses.
type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, expiration).Err()
}

func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	if !c.Enabled() {
		return ErrCacheMiss
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(val, dest)
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Ping returns nil when the cache is disabled.
func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}
