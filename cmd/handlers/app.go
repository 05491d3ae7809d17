package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cappy/internal/cache"
	"cappy/internal/config"
	"cappy/internal/contextprovider"
	"cappy/internal/generator"
	"cappy/internal/llm"
	"cappy/internal/logger"
	"cappy/internal/suggest"
)

// app holds the wired components shared by serve and generate.
type app struct {
	suggest  *suggest.Service
	provider *contextprovider.Static
	checks   map[string]string
	closers  []func() error
}

// newApp builds the generation pipeline from configuration. A missing API key
// leaves generation disabled and every request is answered from the catalog.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log := logger.Get()
	a := &app{checks: make(map[string]string)}

	ideaCache := a.buildCache(ctx, cfg.Cache, log)

	providerCfg := cfg.AI.Active()
	gen, err := llm.New(ctx, llm.Config{
		Provider:    cfg.AI.Provider,
		APIKey:      providerCfg.APIKey,
		Model:       providerCfg.Model,
		BaseURL:     providerCfg.BaseURL,
		Timeout:     config.Duration(providerCfg.Timeout, llm.DefaultTimeout),
		Temperature: providerCfg.Temperature,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.AI.Provider, err)
	}

	if _, disabled := gen.(llm.Disabled); disabled {
		log.Warn("No API key configured, serving ideas from the catalog only", "provider", cfg.AI.Provider)
		a.checks["generation"] = "disabled"
	} else {
		log.Info("Idea generation enabled", "provider", cfg.AI.Provider, "model", providerCfg.Model)
		a.checks["generation"] = cfg.AI.Provider
	}

	orchestrator := generator.New(gen, ideaCache, generator.WithLogger(log))

	a.provider = contextFromConfig(cfg.Context)

	a.suggest = suggest.NewService(orchestrator, a.provider, suggest.WithLogger(log))
	return a, nil
}

func (a *app) buildCache(ctx context.Context, cfg config.Cache, log *slog.Logger) cache.Cache {
	ttl := config.Duration(cfg.TTL, cache.DefaultTTL)

	if cfg.Backend == "redis" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
			TTL:      ttl,
		}, log)
		if err == nil {
			a.closers = append(a.closers, rc.Close)
			a.checks["cache"] = "redis"
			return rc
		}
		// Generation still works without a shared cache
		log.Warn("Redis unavailable, using in-memory cache", "addr", cfg.Redis.Addr, "error", err)
	}

	a.checks["cache"] = "memory"
	return cache.NewMemoryCache(ttl)
}

// Close releases connections held by the app.
func (a *app) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			logger.Warn("Failed to close resource", "error", err)
		}
	}
	a.closers = nil
}

// shutdownTimeout reads the configured grace period for in-flight requests.
func shutdownTimeout(cfg config.Server) time.Duration {
	return config.Duration(cfg.ShutdownTimeout, 30*time.Second)
}
