package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	// DefaultGeminiModel is used when no model is configured.
	DefaultGeminiModel = "gemini-2.0-flash"

	geminiTopP = float32(0.8)
	geminiTopK = float32(40)
)

// GeminiClient calls generateContent on the Gemini API.
type GeminiClient struct {
	gClient *genai.Client
	model   string
	timeout time.Duration
	config  *genai.GenerateContentConfig
}

// NewGeminiClient creates a Gemini client. An empty cfg.BaseURL uses the
// public endpoint.
func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY or ai.gemini.api_key in the config file")
	}
	cfg = cfg.withDefaults(DefaultGeminiModel)

	timeout := cfg.Timeout
	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
			Timeout: &timeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		gClient: gClient,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		config: &genai.GenerateContentConfig{
			Temperature: genai.Ptr(cfg.Temperature),
			TopP:        genai.Ptr(geminiTopP),
			TopK:        genai.Ptr(geminiTopK),
		},
	}, nil
}

// Send issues a single generateContent call with prompt as the only content.
func (c *GeminiClient) Send(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.gClient.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config)
	if err != nil {
		return "", fmt.Errorf("%w: gemini %s: %w", ErrTransport, c.model, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: gemini %s returned no text", ErrEnvelope, c.model)
	}
	return text, nil
}

// Model returns the configured model name.
func (c *GeminiClient) Model() string {
	return c.model
}
