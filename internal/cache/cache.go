package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// PopularFilmsPrefix keys the cached popularity rankings, one entry per
// requested count.
const PopularFilmsPrefix = "popular_films:"

// Cache is a best-effort Redis wrapper. A nil *Cache is a valid no-op
// cache, so callers never branch on whether caching is configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// New connects to Redis at addr. When the server is unreachable it logs
// a warning and returns nil: the application keeps running without a
// cache rather than failing to start.
func New(log *slog.Logger, addr string, ttl time.Duration) *Cache {
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, continuing without cache", "addr", addr, "err", err.Error())
		return nil
	}
	log.Info("redis connection established", "addr", addr)
	return &Cache{client: client, ttl: ttl, log: log}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) Close() {
	if c.Enabled() {
		c.client.Close()
	}
}

// GetJSON reports whether the key was found and unmarshaled into dest.
// A miss is (false, nil), never an error.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	raw, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any) error {
	if !c.Enabled() {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// DeletePrefix drops every key under prefix via SCAN, so invalidation
// never blocks the server the way KEYS would.
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	if !c.Enabled() {
		return nil
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
