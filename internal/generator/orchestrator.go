// Package generator produces idea batches, preferring the cache, then the
// generative model, then the built-in catalog.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"golang.org/x/sync/singleflight"

	"cappy/internal/cache"
	"cappy/internal/catalog"
	"cappy/internal/core"
	"cappy/internal/llm"
	"cappy/internal/prompts"
	"cappy/internal/recovery"
	"cappy/internal/relevance"
)

// ErrNoIdeas means the model answered but no idea survived decoding.
var ErrNoIdeas = errors.New("model response yielded no ideas")

// Result is the outcome of a Generate call. Err records why the fallback path
// was taken and is nil for cached and generated batches.
type Result struct {
	Ideas  []core.Idea
	Source core.Source
	Key    string
	Err    error
}

// Orchestrator ties the cache, the model and the catalog together. It is safe
// for concurrent use.
type Orchestrator struct {
	gen     llm.Generator
	cache   cache.Cache
	catalog *catalog.Catalog
	log     *slog.Logger
	flights singleflight.Group

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithCatalog replaces the built-in fallback catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *Orchestrator) { o.catalog = c }
}

// WithRand sets the randomness used to sample fallback ideas.
func WithRand(r *rand.Rand) Option {
	return func(o *Orchestrator) { o.rng = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// New creates an Orchestrator.
func New(gen llm.Generator, c cache.Cache, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gen:     gen,
		cache:   c,
		catalog: catalog.Default(),
		log:     slog.Default(),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.log = o.log.With("component", "generator")
	return o
}

// Generate returns at most req.RequestedCount ideas for req. It never fails:
// any problem with the model degrades to the catalog.
func (o *Orchestrator) Generate(ctx context.Context, req core.Request) Result {
	key := cache.Key(req)

	if ideas, ok := o.cache.Lookup(ctx, key); ok {
		o.log.Debug("Cache hit", "key", key, "count", len(ideas))
		return Result{Ideas: ideas, Source: core.SourceCached, Key: key}
	}

	// The flight outlives a caller that gives up so concurrent waiters and the
	// cache still get its result. The client timeout bounds it.
	flight := o.flights.DoChan(key, func() (any, error) {
		return o.generate(context.WithoutCancel(ctx), req, key)
	})

	var err error
	select {
	case res := <-flight:
		if res.Err == nil {
			ideas := core.CloneIdeas(res.Val.([]core.Idea))
			return Result{Ideas: ideas, Source: core.SourceGenerated, Key: key}
		}
		err = res.Err
	case <-ctx.Done():
		err = ctx.Err()
	}

	if errors.Is(err, llm.ErrDisabled) {
		o.log.Debug("Generation disabled, using catalog", "key", key)
	} else {
		o.log.Warn("Generation failed, using catalog", "key", key, "error", err)
	}
	return Result{Ideas: o.fallback(req), Source: core.SourceFallback, Key: key, Err: err}
}

func (o *Orchestrator) generate(ctx context.Context, req core.Request, key string) ([]core.Idea, error) {
	prompt := prompts.BuildIdeasPrompt(req.Context, req.RequestedCount, req.PreferredCategory)

	raw, err := o.gen.Send(ctx, prompt)
	if err != nil {
		return nil, err
	}

	ideas, err := recovery.Parse(raw, req.RequestedCount)
	if len(ideas) == 0 {
		if err == nil {
			err = ErrNoIdeas
		}
		return nil, fmt.Errorf("recover ideas: %w", err)
	}
	if err != nil {
		o.log.Warn("Dropped malformed ideas", "key", key, "error", err)
	}

	o.cache.Store(ctx, key, ideas)
	o.log.Info("Generated ideas", "key", key, "count", len(ideas))
	return ideas, nil
}

// fallback picks ideas from the catalog. When more ideas match than were
// requested, a uniform random sample of them is returned in random order;
// otherwise every match is returned in relevance order.
func (o *Orchestrator) fallback(req core.Request) []core.Idea {
	if req.RequestedCount <= 0 {
		return []core.Idea{}
	}

	ranked := relevance.Rank(o.catalog.Filter(req.PreferredCategory, req.MaxDifficulty), req.Context)

	if len(ranked) <= req.RequestedCount {
		ideas := make([]core.Idea, len(ranked))
		for i, s := range ranked {
			ideas[i] = s.Idea
		}
		return ideas
	}

	o.rngMu.Lock()
	perm := o.rng.Perm(len(ranked))
	o.rngMu.Unlock()

	ideas := make([]core.Idea, req.RequestedCount)
	for i := range ideas {
		ideas[i] = ranked[perm[i]].Idea
	}
	return ideas
}
