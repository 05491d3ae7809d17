package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis, *fakeClock) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	clock := newFakeClock()
	c := newRedisCache(rdb, RedisOptions{TTL: ttl, Prefix: "test:"}, nil)
	c.now = clock.Now
	return c, mr, clock
}

func TestNewRedisCacheRequiresAddr(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), RedisOptions{}, nil); err == nil {
		t.Error("Expected error without address")
	}
}

func TestNewRedisCachePings(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedisCache(context.Background(), RedisOptions{Addr: mr.Addr()}, nil)
	if err != nil {
		t.Fatalf("NewRedisCache failed: %v", err)
	}
	defer func() { _ = c.Close() }()

	if c.prefix != "cappy:ideas:" || c.ttl != DefaultTTL {
		t.Errorf("Unexpected defaults: prefix=%q ttl=%v", c.prefix, c.ttl)
	}
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, mr, _ := newTestRedisCache(t, 30*time.Minute)
	ctx := context.Background()

	c.Store(ctx, "k", sampleIdeas())

	if !mr.Exists("test:k") {
		t.Fatal("Expected prefixed key in redis")
	}
	if ttl := mr.TTL("test:k"); ttl != 30*time.Minute {
		t.Errorf("Expected redis TTL of 30m, got %v", ttl)
	}

	got, ok := c.Lookup(ctx, "k")
	if !ok {
		t.Fatal("Expected hit")
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].Tags[0] != "c" {
		t.Errorf("Unexpected batch: %+v", got)
	}
}

func TestRedisCacheReadTimeExpiryIsAuthoritative(t *testing.T) {
	c, mr, clock := newTestRedisCache(t, 30*time.Minute)
	ctx := context.Background()

	c.Store(ctx, "k", sampleIdeas())

	// redis has not expired the key yet, the stored expiry has passed
	clock.Advance(31 * time.Minute)
	if _, ok := c.Lookup(ctx, "k"); ok {
		t.Fatal("Expected miss once stored expiry has passed")
	}
	if mr.Exists("test:k") {
		t.Error("Expected stale key to be deleted")
	}
}

func TestRedisCacheExpiresInRedis(t *testing.T) {
	c, mr, _ := newTestRedisCache(t, time.Minute)
	ctx := context.Background()

	c.Store(ctx, "k", sampleIdeas())
	mr.FastForward(2 * time.Minute)

	if _, ok := c.Lookup(ctx, "k"); ok {
		t.Error("Expected miss after redis expired the key")
	}
}

func TestRedisCacheUnreadableEntryIsMiss(t *testing.T) {
	c, mr, _ := newTestRedisCache(t, time.Minute)

	if err := mr.Set("test:k", "not json"); err != nil {
		t.Fatalf("miniredis set: %v", err)
	}
	if _, ok := c.Lookup(context.Background(), "k"); ok {
		t.Error("Expected miss for unreadable entry")
	}
	if mr.Exists("test:k") {
		t.Error("Expected unreadable entry to be deleted")
	}
}

func TestRedisCacheUnavailableIsMiss(t *testing.T) {
	c, mr, _ := newTestRedisCache(t, time.Minute)
	ctx := context.Background()

	mr.Close()

	c.Store(ctx, "k", sampleIdeas())
	if _, ok := c.Lookup(ctx, "k"); ok {
		t.Error("Expected miss when redis is unavailable")
	}
}
