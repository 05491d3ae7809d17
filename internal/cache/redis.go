package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"cappy/internal/core"
)

// RedisOptions configures a RedisCache.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

type redisEntry struct {
	ExpiresAt time.Time   `json:"expiresAt"`
	Ideas     []core.Idea `json:"ideas"`
}

// RedisCache shares generated batches between processes. Redis expires keys on
// its own; the stored expiry is still checked on every read.
type RedisCache struct {
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
	log    *slog.Logger
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, opts RedisOptions, log *slog.Logger) (*RedisCache, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return newRedisCache(rdb, opts, log), nil
}

func newRedisCache(rdb *goredis.Client, opts RedisOptions, log *slog.Logger) *RedisCache {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "cappy:ideas:"
	}
	if log == nil {
		log = slog.Default()
	}
	return &RedisCache{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
		now:    time.Now,
		log:    log.With("component", "redis_cache"),
	}
}

// Lookup reads the batch under key. Errors are logged and reported as a miss.
func (c *RedisCache) Lookup(ctx context.Context, key string) ([]core.Idea, bool) {
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.Warn("Cache lookup failed", "key", key, "error", err)
		}
		return nil, false
	}

	var e redisEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.log.Warn("Discarding unreadable cache entry", "key", key, "error", err)
		c.rdb.Del(ctx, c.prefix+key)
		return nil, false
	}

	if !c.now().Before(e.ExpiresAt) {
		c.rdb.Del(ctx, c.prefix+key)
		return nil, false
	}
	return e.Ideas, true
}

// Store writes the batch under key with a fresh expiry.
func (c *RedisCache) Store(ctx context.Context, key string, ideas []core.Idea) {
	raw, err := json.Marshal(redisEntry{
		ExpiresAt: c.now().Add(c.ttl),
		Ideas:     ideas,
	})
	if err != nil {
		c.log.Warn("Failed to encode cache entry", "key", key, "error", err)
		return
	}

	if err := c.rdb.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache store failed", "key", key, "error", err)
	}
}

// Close releases the Redis connection pool.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
