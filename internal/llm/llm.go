// Package llm sends icebreaker prompts to a generative model and returns the raw
// text it produced.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// ProviderGemini selects the Google Gemini API.
	ProviderGemini = "gemini"
	// ProviderOpenAI selects an OpenAI-compatible chat completion API.
	ProviderOpenAI = "openai"

	// DefaultTimeout bounds a single model call.
	DefaultTimeout = 30 * time.Second
	// DefaultTemperature keeps output close to the requested JSON shape.
	DefaultTemperature = float32(0.3)
)

var (
	// ErrTransport covers failed calls, timeouts and non-success statuses.
	ErrTransport = errors.New("generation service call failed")
	// ErrEnvelope means the service answered without any text.
	ErrEnvelope = errors.New("generation response has no text")
	// ErrDisabled is returned by Disabled. It wraps ErrTransport.
	ErrDisabled = fmt.Errorf("%w: no API key configured", ErrTransport)
)

// Generator sends one prompt and returns the model's raw text.
type Generator interface {
	Send(ctx context.Context, prompt string) (string, error)
}

// Config selects and tunes a provider.
type Config struct {
	Provider    string        // ProviderGemini (default) or ProviderOpenAI
	APIKey      string        // Empty yields Disabled
	Model       string        // Provider default when empty
	BaseURL     string        // Optional endpoint override for proxies and compatible services
	Timeout     time.Duration // DefaultTimeout when zero
	Temperature float32       // DefaultTemperature when zero
}

func (c Config) withDefaults(model string) Config {
	if c.Model == "" {
		c.Model = model
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
	return c
}

// New builds the generator named by cfg.Provider. Without an API key it
// returns Disabled so callers degrade to the catalog.
func New(ctx context.Context, cfg Config) (Generator, error) {
	if cfg.APIKey == "" {
		return Disabled{}, nil
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	case ProviderOpenAI:
		return NewOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unknown AI provider %q (supported: %s, %s)", cfg.Provider, ProviderGemini, ProviderOpenAI)
	}
}

// Disabled never calls a model.
type Disabled struct{}

func (Disabled) Send(context.Context, string) (string, error) {
	return "", ErrDisabled
}
