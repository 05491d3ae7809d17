// Package catalog holds the pre-authored icebreaker ideas used when generation
// is unavailable.
package catalog

import (
	"sync"

	"cappy/internal/core"
)

// Catalog is an immutable, ordered set of ideas. It is safe for concurrent use.
type Catalog struct {
	ideas []core.Idea
}

// New builds a catalog from ideas. The input is copied.
func New(ideas ...core.Idea) *Catalog {
	return &Catalog{ideas: core.CloneIdeas(ideas)}
}

var (
	defaultCatalog *Catalog
	defaultOnce    sync.Once
)

// Default returns the built-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = New(builtinIdeas()...)
	})
	return defaultCatalog
}

// Len returns the number of ideas in the catalog.
func (c *Catalog) Len() int {
	return len(c.ideas)
}

// All returns a copy of every idea in catalog order.
func (c *Catalog) All() []core.Idea {
	return core.CloneIdeas(c.ideas)
}

// Filter returns, in catalog order, the ideas of the given category with a
// difficulty no higher than maxDifficulty. An empty category matches all
// categories and a maxDifficulty <= 0 disables the ceiling.
func (c *Catalog) Filter(category core.Category, maxDifficulty int) []core.Idea {
	out := make([]core.Idea, 0, len(c.ideas))
	for _, idea := range c.ideas {
		if category != "" && idea.Category != category {
			continue
		}
		if maxDifficulty > 0 && idea.Difficulty > maxDifficulty {
			continue
		}
		out = append(out, idea.Clone())
	}
	return out
}
