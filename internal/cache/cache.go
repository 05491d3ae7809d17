// Package cache stores generated idea batches for a bounded time.
package cache

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"cappy/internal/core"
)

// DefaultTTL is how long a generated batch stays valid.
const DefaultTTL = 30 * time.Minute

// Cache is a concurrency-safe store of idea batches keyed by request
// fingerprint. Lookup never returns an entry whose expiry has passed.
type Cache interface {
	// Lookup returns the batch stored under key if it has not expired.
	Lookup(ctx context.Context, key string) ([]core.Idea, bool)

	// Store inserts or replaces the batch under key with a fresh expiry.
	Store(ctx context.Context, key string, ideas []core.Idea)
}

// Key derives the deterministic fingerprint of a request. Interests are
// compared as a set, and the max difficulty is not part of the key. Strings are
// quoted so that absent fields (null) never collide with present values.
func Key(req core.Request) string {
	c := req.Context
	return fmt.Sprintf("%d|%q|%s|%d|%s|%s|%s|%s|%s",
		req.RequestedCount,
		c.Location,
		orNull(c.CurrentWeather),
		c.HourOfDay,
		orNull(c.DayOfWeek),
		orNull(c.Season),
		orNull(c.LocalCulture),
		strings.Join(interestSet(c.UserInterests), ","),
		orNull(string(req.PreferredCategory)),
	)
}

func orNull(s string) string {
	if s == "" {
		return "null"
	}
	return strconv.Quote(s)
}

func interestSet(interests []string) []string {
	seen := make(map[string]bool, len(interests))
	out := make([]string, 0, len(interests))
	for _, i := range interests {
		if seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, strconv.Quote(i))
	}
	sort.Strings(out)
	return out
}
