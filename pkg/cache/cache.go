// Package cache stores JSON-encoded values under string keys.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-review/pkg/metrics"
	"movie-review/pkg/utils"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	// Get decodes the value under key into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Close() error
}

type redisCache struct {
	client  *redis.Client
	prefix  string
	metrics *metrics.CacheMetrics
}

// NewRedisClient connects and pings the configured redis server.
func NewRedisClient(ctx context.Context, config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", config.Addr, err)
	}
	return client, nil
}

// NewRedisCache namespaces every key with prefix. m may be nil.
func NewRedisCache(client *redis.Client, prefix string, m *metrics.CacheMetrics) Cache {
	return &redisCache{
		client:  client,
		prefix:  prefix,
		metrics: m,
	}
}

func (c *redisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.observe(key, false)
		return false, nil
	}
	if err != nil {
		c.fail("get")
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		c.fail("decode")
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	c.observe(key, true)
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		c.fail("encode")
		return fmt.Errorf("cache encode %s: %w", key, err)
	}

	if err := c.client.Set(ctx, c.prefix+key, raw, ttl).Err(); err != nil {
		c.fail("set")
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

func (c *redisCache) observe(key string, hit bool) {
	if c.metrics == nil {
		return
	}
	label := keyPrefix(key)
	if hit {
		c.metrics.Hits.WithLabelValues(label).Inc()
		return
	}
	c.metrics.Misses.WithLabelValues(label).Inc()
}

func (c *redisCache) fail(op string) {
	if c.metrics == nil {
		return
	}
	c.metrics.Errors.WithLabelValues(op).Inc()
}

// keyPrefix keeps metric label cardinality bounded: "search:batman" -> "search".
func keyPrefix(key string) string {
	prefix, _, _ := strings.Cut(key, ":")
	return prefix
}

type noopCache struct{}

// NewNoop returns a cache that never stores anything.
func NewNoop() Cache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string, any) (bool, error) {
	return false, nil
}

func (noopCache) Set(context.Context, string, any, time.Duration) error {
	return nil
}

func (noopCache) Close() error {
	return nil
}
