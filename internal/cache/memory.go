package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"cappy/internal/core"
)

const defaultShards = 32

type entry struct {
	ideas     []core.Idea
	expiresAt time.Time
}

type shard struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// MemoryCache is an in-process Cache. Keys are spread over independently
// locked shards so unrelated keys do not contend on a single lock.
type MemoryCache struct {
	shards []*shard
	ttl    time.Duration
	now    func() time.Time
}

// MemoryOption configures a MemoryCache.
type MemoryOption func(*MemoryCache)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *MemoryCache) { c.now = now }
}

// WithShards sets the number of shards. Values below 1 are ignored.
func WithShards(n int) MemoryOption {
	return func(c *MemoryCache) {
		if n > 0 {
			c.shards = newShards(n)
		}
	}
}

// NewMemoryCache creates an in-memory cache whose entries live for ttl.
// A non-positive ttl falls back to DefaultTTL.
func NewMemoryCache(ttl time.Duration, opts ...MemoryOption) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &MemoryCache{
		shards: newShards(defaultShards),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newShards(n int) []*shard {
	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = &shard{entries: make(map[string]entry)}
	}
	return shards
}

func (c *MemoryCache) shardFor(key string) *shard {
	return c.shards[xxhash.Sum64String(key)%uint64(len(c.shards))]
}

// Lookup returns a copy of the batch under key. An expired entry is removed and
// reported as a miss.
func (c *MemoryCache) Lookup(_ context.Context, key string) ([]core.Idea, bool) {
	s := c.shardFor(key)
	now := c.now()

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !now.Before(e.expiresAt) {
		s.mu.Lock()
		// A concurrent Store may have replaced the entry since the read above.
		if cur, ok := s.entries[key]; ok && !now.Before(cur.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return core.CloneIdeas(e.ideas), true
}

// Store inserts or replaces the batch under key and then purges every expired
// entry in the cache.
func (c *MemoryCache) Store(_ context.Context, key string, ideas []core.Idea) {
	now := c.now()
	e := entry{
		ideas:     core.CloneIdeas(ideas),
		expiresAt: now.Add(c.ttl),
	}

	s := c.shardFor(key)
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()

	c.sweep(now)
}

// sweep removes expired entries one shard at a time.
func (c *MemoryCache) sweep(now time.Time) int {
	removed := 0
	for _, s := range c.shards {
		s.mu.Lock()
		for k, e := range s.entries {
			if !now.Before(e.expiresAt) {
				delete(s.entries, k)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}

// Len returns the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}
