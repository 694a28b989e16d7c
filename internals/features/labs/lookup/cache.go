// file: internals/features/labs/lookup/cache.go
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

const DefaultCacheTTL = 5 * time.Minute

// Cache stores JSON-encoded lookup values.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
}

/* =========================
   In-memory
========================= */

// DefaultCacheSize bounds the in-memory cache; least recently used keys go
// first, expired keys are swept in the background.
const DefaultCacheSize = 1024

type memoryCache struct {
	lru *expirable.LRU[string, []byte]
}

func NewMemoryCache(ttl time.Duration) Cache {
	return NewSizedMemoryCache(DefaultCacheSize, ttl)
}

func NewSizedMemoryCache(size int, ttl time.Duration) Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &memoryCache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (c *memoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	b, ok := c.lru.Get(key)
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memoryCache) Set(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.lru.Add(key, b)
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.lru.Remove(k)
	}
	return nil
}

/* =========================
   Redis
========================= */

type redisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache parses a redis:// URL; plain "host:port" is accepted too.
func NewRedisCache(url string, ttl time.Duration) (Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		opts = &redis.Options{Addr: url}
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &redisCache{rdb: rdb, ttl: ttl}, nil
}

func (c *redisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *redisCache) Set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
