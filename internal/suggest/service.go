// Package suggest is the use case behind the API and the CLI: it validates a
// request, obtains ideas and wraps them in a response.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"

	"cappy/internal/contextprovider"
	"cappy/internal/core"
	"cappy/internal/generator"
)

// Bounds for RequestedCount.
const (
	MinCount = 1
	MaxCount = 10
)

var (
	// ErrInvalidRequest is wrapped by every validation error.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidCount rejects counts outside [MinCount, MaxCount].
	ErrInvalidCount = fmt.Errorf("%w: requestedCount must be between %d and %d", ErrInvalidRequest, MinCount, MaxCount)
)

var motivationalMessages = []string{
	"How about starting an amazing conversation? These ideas will help you truly connect!",
	"Special moments start with a simple question. Use these ideas to build authentic connections!",
	"Disconnect from the virtual and connect with the real! These ideas are your passport to memorable conversations.",
	"The magic happens when real people meet. Let these ideas guide your conversations!",
	"Every 'hi' can be the start of an amazing friendship. Use these ideas to break the ice!",
}

// IdeaSource produces idea batches. *generator.Orchestrator implements it.
type IdeaSource interface {
	Generate(ctx context.Context, req core.Request) generator.Result
}

// AutoRequest asks for ideas using the context of the current user.
type AutoRequest struct {
	RequestedCount    int           `json:"requestedCount"`
	PreferredCategory core.Category `json:"preferredCategory,omitempty"`
	MaxDifficulty     int           `json:"maxDifficulty,omitempty"`
}

// Service is safe for concurrent use.
type Service struct {
	ideas    IdeaSource
	provider contextprovider.Provider
	log      *slog.Logger
	newID    func() string

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithRand sets the randomness used for selection and messages.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rng = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithIDs replaces the response ID generator.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a Service.
func NewService(ideas IdeaSource, provider contextprovider.Provider, opts ...Option) *Service {
	s := &Service{
		ideas:    ideas,
		provider: provider,
		log:      slog.Default(),
		newID:    uuid.NewString,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "suggest")
	return s
}

// Execute validates req and returns ideas for it.
func (s *Service) Execute(ctx context.Context, req core.Request) (core.Response, error) {
	if err := Validate(req); err != nil {
		return core.Response{}, err
	}

	result := s.ideas.Generate(ctx, req)
	selected := s.selectIdeas(result.Ideas, req)

	s.log.Info("Suggestions ready",
		"source", result.Source,
		"requested", req.RequestedCount,
		"returned", len(selected))

	return core.Response{
		ID:              s.newID(),
		Ideas:           selected,
		MotivationalMsg: s.motivationalMessage(),
		ContextUsed:     ContextSummary(req.Context),
		Source:          result.Source,
	}, nil
}

// ExecuteAuto fills the context from the provider and runs Execute.
func (s *Service) ExecuteAuto(ctx context.Context, req AutoRequest) (core.Response, error) {
	if err := validateCount(req.RequestedCount); err != nil {
		return core.Response{}, err
	}

	current, err := s.provider.Current(ctx)
	if err != nil {
		return core.Response{}, fmt.Errorf("failed to get current context: %w", err)
	}

	return s.Execute(ctx, core.Request{
		Context:           current,
		RequestedCount:    req.RequestedCount,
		PreferredCategory: req.PreferredCategory,
		MaxDifficulty:     req.MaxDifficulty,
	})
}

// Validate checks the bounds the core relies on callers to enforce.
func Validate(req core.Request) error {
	if err := validateCount(req.RequestedCount); err != nil {
		return err
	}
	if strings.TrimSpace(req.Context.Location) == "" {
		return fmt.Errorf("%w: context.location is required", ErrInvalidRequest)
	}
	if req.Context.HourOfDay < 0 || req.Context.HourOfDay > 23 {
		return fmt.Errorf("%w: context.hourOfDay must be between 0 and 23, got %d", ErrInvalidRequest, req.Context.HourOfDay)
	}
	if req.PreferredCategory != "" && !req.PreferredCategory.Valid() {
		return fmt.Errorf("%w: unknown preferredCategory %q", ErrInvalidRequest, req.PreferredCategory)
	}
	if req.MaxDifficulty < 0 || req.MaxDifficulty > 3 {
		return fmt.Errorf("%w: maxDifficulty must be between 1 and 3, got %d", ErrInvalidRequest, req.MaxDifficulty)
	}
	return nil
}

func validateCount(n int) error {
	if n < MinCount || n > MaxCount {
		return fmt.Errorf("%w (got %d)", ErrInvalidCount, n)
	}
	return nil
}

// selectIdeas applies the request filters, then picks a random subset when
// more ideas remain than were requested.
func (s *Service) selectIdeas(ideas []core.Idea, req core.Request) []core.Idea {
	filtered := make([]core.Idea, 0, len(ideas))
	for _, idea := range ideas {
		if req.PreferredCategory != "" && idea.Category != req.PreferredCategory {
			continue
		}
		if req.MaxDifficulty > 0 && idea.Difficulty > req.MaxDifficulty {
			continue
		}
		filtered = append(filtered, idea)
	}

	if len(filtered) <= req.RequestedCount {
		return filtered
	}

	s.rngMu.Lock()
	s.rng.Shuffle(len(filtered), func(i, j int) {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	})
	s.rngMu.Unlock()

	return filtered[:req.RequestedCount]
}

func (s *Service) motivationalMessage() string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return motivationalMessages[s.rng.IntN(len(motivationalMessages))]
}

// ContextSummary describes which optional context fields were used.
func ContextSummary(ctx core.Context) string {
	var parts []string
	if ctx.CurrentWeather != "" {
		parts = append(parts, "weather: "+ctx.CurrentWeather)
	}
	if ctx.DayOfWeek != "" {
		parts = append(parts, "day: "+ctx.DayOfWeek)
	}
	if ctx.LocalCulture != "" {
		parts = append(parts, "culture: "+ctx.LocalCulture)
	}
	if len(ctx.UserInterests) > 0 {
		parts = append(parts, "interests: "+strings.Join(ctx.UserInterests, ", "))
	}

	if len(parts) == 0 {
		return "Context: general"
	}
	return "Context: " + strings.Join(parts, " | ")
}
