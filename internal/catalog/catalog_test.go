package catalog

import (
	"testing"

	"cappy/internal/core"
)

func TestDefaultCatalogIsWellFormed(t *testing.T) {
	c := Default()
	if c.Len() == 0 {
		t.Fatal("Expected built-in ideas")
	}

	seen := make(map[string]bool)
	for _, idea := range c.All() {
		if seen[idea.ID] {
			t.Errorf("Duplicate idea ID %q", idea.ID)
		}
		seen[idea.ID] = true

		if !idea.Category.Valid() {
			t.Errorf("Idea %s has invalid category %q", idea.ID, idea.Category)
		}
		if idea.Difficulty < 1 || idea.Difficulty > 3 {
			t.Errorf("Idea %s has difficulty %d out of range", idea.ID, idea.Difficulty)
		}
		if idea.EstimatedMinutes <= 0 {
			t.Errorf("Idea %s has non-positive duration", idea.ID)
		}
	}

	for _, cat := range core.Categories {
		if len(c.Filter(cat, 0)) == 0 {
			t.Errorf("Expected at least one idea for %s", cat)
		}
	}
}

func TestDefaultReturnsSameInstance(t *testing.T) {
	if Default() != Default() {
		t.Error("Default should return a single shared catalog")
	}
}

func TestFilter(t *testing.T) {
	c := New(
		core.Idea{ID: "1", Category: core.CategoryQuestion, Difficulty: 1},
		core.Idea{ID: "2", Category: core.CategoryGame, Difficulty: 2},
		core.Idea{ID: "3", Category: core.CategoryQuestion, Difficulty: 3},
		core.Idea{ID: "4", Category: core.CategoryQuestion, Difficulty: 2},
	)

	tests := []struct {
		name     string
		category core.Category
		max      int
		want     []string
	}{
		{"no filters", "", 0, []string{"1", "2", "3", "4"}},
		{"category only", core.CategoryQuestion, 0, []string{"1", "3", "4"}},
		{"difficulty only", "", 2, []string{"1", "2", "4"}},
		{"both", core.CategoryQuestion, 2, []string{"1", "4"}},
		{"nothing matches", core.CategoryChallenge, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Filter(tt.category, tt.max)
			if len(got) != len(tt.want) {
				t.Fatalf("Filter returned %d ideas, want %d", len(got), len(tt.want))
			}
			for i, idea := range got {
				if idea.ID != tt.want[i] {
					t.Errorf("Filter[%d] = %s, want %s", i, idea.ID, tt.want[i])
				}
			}
		})
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	source := []core.Idea{{ID: "1", Tags: []string{"a"}}}
	c := New(source...)

	source[0].Tags[0] = "changed"
	all := c.All()
	if all[0].Tags[0] != "a" {
		t.Error("Catalog should not share tag storage with its input")
	}

	all[0].Tags[0] = "mutated"
	all[0].Title = "mutated"
	again := c.Filter("", 0)
	if again[0].Tags[0] != "a" || again[0].Title != "" {
		t.Error("Catalog should not expose its internal ideas")
	}
}
