package generator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"cappy/internal/cache"
	"cappy/internal/catalog"
	"cappy/internal/core"
	"cappy/internal/llm"
	"cappy/internal/recovery"
)

type fakeGenerator struct {
	mu       sync.Mutex
	calls    int
	prompts  []string
	response string
	err      error
	started  chan struct{}
	release  chan struct{}
}

func (f *fakeGenerator) Send(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.started != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
	}
	if f.release != nil {
		<-f.release
	}
	return f.response, f.err
}

func (f *fakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seeded(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

func modelResponse(t *testing.T, n int) string {
	t.Helper()
	ideas := make([]core.Idea, n)
	for i := range ideas {
		ideas[i] = core.Idea{
			ID:               string(rune('a' + i)),
			Title:            "Generated",
			Description:      "From the model",
			Category:         core.CategoryGame,
			Tags:             []string{"music"},
			Difficulty:       2,
			EstimatedMinutes: 5,
		}
	}
	raw, err := json.Marshal(ideas)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return "Here you go:\n" + string(raw)
}

func baseRequest(count int) core.Request {
	return core.Request{
		Context: core.Context{
			Location:      "São Paulo, SP",
			HourOfDay:     15,
			UserInterests: []string{"music"},
			LocalCulture:  "paulista",
		},
		RequestedCount: count,
	}
}

func TestGenerateFallbackEndToEnd(t *testing.T) {
	want := core.Idea{
		ID:               "weather-talk",
		Title:            "Talk about the weather",
		Description:      "Ask how the weather changed their plans",
		Category:         core.CategoryConversationTopic,
		Tags:             []string{"clima"},
		Difficulty:       1,
		EstimatedMinutes: 3,
	}
	cat := catalog.New(
		core.Idea{ID: "game", Category: core.CategoryGame, Tags: []string{"clima"}, Difficulty: 1, EstimatedMinutes: 5},
		core.Idea{ID: "hard-topic", Category: core.CategoryConversationTopic, Tags: []string{"clima"}, Difficulty: 3, EstimatedMinutes: 5},
		want,
	)

	var req core.Request
	body := `{"context":{"location":"Recife","hourOfDay":10,"localCulture":"clima"},"requestedCount":1,"preferredCategory":"TemaConversa","maxDifficulty":1}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode request: %v", err)
	}

	gen := &fakeGenerator{err: llm.ErrTransport}
	memory := cache.NewMemoryCache(cache.DefaultTTL)
	o := New(gen, memory, WithCatalog(cat), WithLogger(quietLogger()), seeded(1))

	res := o.Generate(context.Background(), req)

	if res.Source != core.SourceFallback {
		t.Errorf("Expected fallback source, got %s", res.Source)
	}
	if !errors.Is(res.Err, llm.ErrTransport) {
		t.Errorf("Expected fallback reason to be recorded, got %v", res.Err)
	}
	if len(res.Ideas) != 1 || res.Ideas[0].ID != want.ID {
		t.Fatalf("Expected exactly %q, got %+v", want.ID, res.Ideas)
	}
	if memory.Len() != 0 {
		t.Error("Fallback ideas must not be cached")
	}
}

func TestGenerateUsesModelThenCache(t *testing.T) {
	gen := &fakeGenerator{response: modelResponse(t, 3)}
	o := New(gen, cache.NewMemoryCache(cache.DefaultTTL), WithLogger(quietLogger()))
	req := baseRequest(2)
	req.PreferredCategory = core.CategoryGame

	first := o.Generate(context.Background(), req)
	if first.Source != core.SourceGenerated || first.Err != nil {
		t.Fatalf("Expected generated result, got %s (%v)", first.Source, first.Err)
	}
	if len(first.Ideas) != 2 || first.Ideas[0].ID != "a" || first.Ideas[1].ID != "b" {
		t.Errorf("Expected the first two model ideas, got %+v", first.Ideas)
	}
	if first.Key != cache.Key(req) {
		t.Errorf("Unexpected key %q", first.Key)
	}

	second := o.Generate(context.Background(), req)
	if second.Source != core.SourceCached {
		t.Errorf("Expected cached result, got %s", second.Source)
	}
	if len(second.Ideas) != 2 || second.Ideas[0].ID != "a" {
		t.Errorf("Cached batch differs: %+v", second.Ideas)
	}
	if gen.Calls() != 1 {
		t.Errorf("Expected a single model call, got %d", gen.Calls())
	}

	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "Generate 2 icebreaker ideas") || !strings.Contains(prompt, "Preferred category: Game") {
		t.Errorf("Prompt does not reflect the request:\n%s", prompt)
	}
}

func TestGenerateFallbackReasons(t *testing.T) {
	tests := []struct {
		name string
		gen  llm.Generator
		want error
	}{
		{"transport", &fakeGenerator{err: llm.ErrTransport}, llm.ErrTransport},
		{"envelope", &fakeGenerator{err: llm.ErrEnvelope}, llm.ErrEnvelope},
		{"disabled", llm.Disabled{}, llm.ErrDisabled},
		{"no array", &fakeGenerator{response: "Sorry, I can't help."}, recovery.ErrNoArray},
		{"unrepairable", &fakeGenerator{response: `[{"id": }]`}, recovery.ErrUnrepairable},
		{"no valid element", &fakeGenerator{response: `[{"id":"1"}]`}, recovery.ErrElementDecode},
		{"empty array", &fakeGenerator{response: `[]`}, ErrNoIdeas},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memory := cache.NewMemoryCache(cache.DefaultTTL)
			o := New(tt.gen, memory, WithLogger(quietLogger()), seeded(7))

			res := o.Generate(context.Background(), baseRequest(3))
			if res.Source != core.SourceFallback {
				t.Errorf("Expected fallback, got %s", res.Source)
			}
			if !errors.Is(res.Err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, res.Err)
			}
			if len(res.Ideas) != 3 {
				t.Errorf("Expected 3 catalog ideas, got %d", len(res.Ideas))
			}
			if memory.Len() != 0 {
				t.Error("Failed generation must not be cached")
			}
		})
	}
}

func TestGenerateNeverExceedsRequestedCount(t *testing.T) {
	o := New(&fakeGenerator{err: llm.ErrTransport}, cache.NewMemoryCache(cache.DefaultTTL), WithLogger(quietLogger()), seeded(3))

	for count := 0; count <= 40; count++ {
		res := o.Generate(context.Background(), baseRequest(count))
		if len(res.Ideas) > count {
			t.Errorf("count=%d: got %d ideas", count, len(res.Ideas))
		}
		if count > 0 && count <= catalog.Default().Len() && len(res.Ideas) != count {
			t.Errorf("count=%d: expected a full batch, got %d", count, len(res.Ideas))
		}
	}

	gen := &fakeGenerator{response: modelResponse(t, 8)}
	o = New(gen, cache.NewMemoryCache(cache.DefaultTTL), WithLogger(quietLogger()))
	if res := o.Generate(context.Background(), baseRequest(5)); len(res.Ideas) != 5 {
		t.Errorf("Expected model batch truncated to 5, got %d", len(res.Ideas))
	}
}

func TestFallbackSamplesDistinctMatches(t *testing.T) {
	req := baseRequest(4)
	req.MaxDifficulty = 1

	o := New(&fakeGenerator{err: llm.ErrTransport}, cache.NewMemoryCache(cache.DefaultTTL), WithLogger(quietLogger()), seeded(42))
	res := o.Generate(context.Background(), req)

	allowed := map[string]bool{}
	for _, idea := range catalog.Default().Filter("", 1) {
		allowed[idea.ID] = true
	}
	seen := map[string]bool{}
	for _, idea := range res.Ideas {
		if !allowed[idea.ID] {
			t.Errorf("Idea %s does not match the filters", idea.ID)
		}
		if seen[idea.ID] {
			t.Errorf("Idea %s sampled twice", idea.ID)
		}
		seen[idea.ID] = true
	}

	again := New(&fakeGenerator{err: llm.ErrTransport}, cache.NewMemoryCache(cache.DefaultTTL), WithLogger(quietLogger()), seeded(42))
	res2 := again.Generate(context.Background(), req)
	for i := range res.Ideas {
		if res.Ideas[i].ID != res2.Ideas[i].ID {
			t.Fatalf("Same seed produced different samples: %v vs %v", res.Ideas, res2.Ideas)
		}
	}
}

func TestFallbackUndersupplyKeepsRelevanceOrder(t *testing.T) {
	cat := catalog.New(
		core.Idea{ID: "plain", Category: core.CategoryGame, Tags: []string{"cards"}, Difficulty: 1, EstimatedMinutes: 5},
		core.Idea{ID: "music", Category: core.CategoryGame, Tags: []string{"music"}, Difficulty: 1, EstimatedMinutes: 5},
		core.Idea{ID: "other", Category: core.CategoryQuestion, Tags: []string{"music"}, Difficulty: 1, EstimatedMinutes: 5},
	)
	req := baseRequest(5)
	req.PreferredCategory = core.CategoryGame

	o := New(&fakeGenerator{err: llm.ErrTransport}, cache.NewMemoryCache(cache.DefaultTTL), WithCatalog(cat), WithLogger(quietLogger()))
	res := o.Generate(context.Background(), req)

	if len(res.Ideas) != 2 || res.Ideas[0].ID != "music" || res.Ideas[1].ID != "plain" {
		t.Errorf("Expected [music plain], got %+v", res.Ideas)
	}
}

func TestGenerateCoalescesConcurrentMisses(t *testing.T) {
	gen := &fakeGenerator{
		response: modelResponse(t, 3),
		started:  make(chan struct{}, 1),
		release:  make(chan struct{}),
	}
	o := New(gen, cache.NewMemoryCache(cache.DefaultTTL), WithLogger(quietLogger()))
	req := baseRequest(3)

	const callers = 6
	results := make(chan Result, callers)
	for i := 0; i < callers; i++ {
		go func() { results <- o.Generate(context.Background(), req) }()
	}

	<-gen.started
	time.Sleep(50 * time.Millisecond)
	close(gen.release)

	for i := 0; i < callers; i++ {
		res := <-results
		if res.Source == core.SourceFallback {
			t.Errorf("Unexpected fallback: %v", res.Err)
		}
		if len(res.Ideas) != 3 {
			t.Errorf("Expected 3 ideas, got %d", len(res.Ideas))
		}
	}
	if gen.Calls() != 1 {
		t.Errorf("Expected one model call for concurrent misses, got %d", gen.Calls())
	}
}

func TestGenerateAbandonedCallerStillFillsCache(t *testing.T) {
	gen := &fakeGenerator{
		response: modelResponse(t, 2),
		started:  make(chan struct{}, 1),
		release:  make(chan struct{}),
	}
	memory := cache.NewMemoryCache(cache.DefaultTTL)
	o := New(gen, memory, WithLogger(quietLogger()))
	req := baseRequest(2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Result, 1)
	go func() { done <- o.Generate(ctx, req) }()

	<-gen.started
	cancel()

	res := <-done
	if res.Source != core.SourceFallback || !errors.Is(res.Err, context.Canceled) {
		t.Errorf("Expected fallback on cancellation, got %s (%v)", res.Source, res.Err)
	}

	close(gen.release)

	deadline := time.Now().Add(time.Second)
	for {
		if ideas, ok := memory.Lookup(context.Background(), cache.Key(req)); ok {
			if len(ideas) != 2 {
				t.Errorf("Expected complete batch in cache, got %d", len(ideas))
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("Abandoned generation never reached the cache")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestGenerateReturnsIndependentCopies(t *testing.T) {
	o := New(&fakeGenerator{response: modelResponse(t, 1)}, cache.NewMemoryCache(cache.DefaultTTL), WithLogger(quietLogger()))
	req := baseRequest(1)

	first := o.Generate(context.Background(), req)
	first.Ideas[0].Tags[0] = "mutated"

	second := o.Generate(context.Background(), req)
	if second.Ideas[0].Tags[0] != "music" {
		t.Errorf("Cached batch was mutated through a returned slice: %+v", second.Ideas[0])
	}
}
