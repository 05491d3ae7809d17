package core

import (
	"fmt"
	"strings"
)

// Category classifies an icebreaker idea.
type Category string

const (
	CategoryQuestion            Category = "Question"
	CategoryGame                Category = "Game"
	CategoryChallenge           Category = "Challenge"
	CategoryConversationTopic   Category = "ConversationTopic"
	CategoryInteractiveActivity Category = "InteractiveActivity"
)

// Categories lists every known category in declaration order.
var Categories = []Category{
	CategoryQuestion,
	CategoryGame,
	CategoryChallenge,
	CategoryConversationTopic,
	CategoryInteractiveActivity,
}

// categoryAliases maps lowercased names, including the Portuguese names used by
// the first version of the API, to their category.
var categoryAliases = map[string]Category{
	"question":            CategoryQuestion,
	"pergunta":            CategoryQuestion,
	"game":                CategoryGame,
	"jogo":                CategoryGame,
	"challenge":           CategoryChallenge,
	"desafio":             CategoryChallenge,
	"conversationtopic":   CategoryConversationTopic,
	"temaconversa":        CategoryConversationTopic,
	"interactiveactivity": CategoryInteractiveActivity,
	"atividadeinterativa": CategoryInteractiveActivity,
}

// ParseCategory matches name case-insensitively against the known categories.
func ParseCategory(name string) (Category, bool) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Valid reports whether c is one of the known categories in canonical form.
func (c Category) Valid() bool {
	v, ok := ParseCategory(string(c))
	return ok && v == c
}

// UnmarshalText accepts any alias of a known category. An empty value leaves the
// category unset.
func (c *Category) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = ""
		return nil
	}
	v, ok := ParseCategory(string(text))
	if !ok {
		return fmt.Errorf("unknown category %q", string(text))
	}
	*c = v
	return nil
}

// Idea is a single structured icebreaker suggestion.
type Idea struct {
	ID               string   `json:"id"`               // Unique within a batch
	Title            string   `json:"title"`            // Short headline
	Description      string   `json:"description"`      // What to say or do
	Category         Category `json:"category"`         // One of Categories
	Tags             []string `json:"tags"`             // Free-form tags used for relevance matching
	Difficulty       int      `json:"difficulty"`       // 1 (easy) to 3 (hard)
	EstimatedMinutes int      `json:"estimatedMinutes"` // Expected duration
}

// Clone returns a copy of i that shares no memory with it.
func (i Idea) Clone() Idea {
	if i.Tags != nil {
		i.Tags = append([]string(nil), i.Tags...)
	}
	return i
}

// CloneIdeas deep-copies a batch.
func CloneIdeas(ideas []Idea) []Idea {
	out := make([]Idea, len(ideas))
	for i, idea := range ideas {
		out[i] = idea.Clone()
	}
	return out
}

// Context holds the situational inputs that shape idea selection.
// Empty strings and slices mean the field was not informed.
type Context struct {
	Location       string   `json:"location"`
	CurrentWeather string   `json:"currentWeather,omitempty"`
	HourOfDay      int      `json:"hourOfDay"`
	DayOfWeek      string   `json:"dayOfWeek,omitempty"`
	Season         string   `json:"season,omitempty"`
	UserInterests  []string `json:"userInterests,omitempty"`
	LocalCulture   string   `json:"localCulture,omitempty"`
}

// Request asks for a batch of ideas for a context.
type Request struct {
	Context           Context  `json:"context"`
	RequestedCount    int      `json:"requestedCount"`
	PreferredCategory Category `json:"preferredCategory,omitempty"` // Empty means any category
	MaxDifficulty     int      `json:"maxDifficulty,omitempty"`     // Zero means no ceiling
}

// Source tells which path produced a batch of ideas.
type Source string

const (
	SourceCached    Source = "cached"
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// Response is what callers of the suggestion service receive.
type Response struct {
	ID              string `json:"id"`
	Ideas           []Idea `json:"ideas"`
	MotivationalMsg string `json:"motivationalMessage"`
	ContextUsed     string `json:"contextUsed"`
	Source          Source `json:"source"`
}
