// Package llm adapts the langchaingo model clients to the single operation
// the rest of the service needs: send one prompt, get plain text back.
// Provider-specific request and response shapes never leave this package.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Supported providers.
const (
	ProviderGoogle    = "google"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Providers lists every accepted value of Config.Provider.
var Providers = []string{ProviderGoogle, ProviderOpenAI, ProviderAnthropic, ProviderOllama}

var defaultModels = map[string]string{
	ProviderGoogle:    "gemini-1.5-flash",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-3-5-haiku-latest",
	ProviderOllama:    "llama3",
}

var (
	// ErrNoAPIKey is returned by New when a hosted provider has no API key.
	ErrNoAPIKey = errors.New("llm: API key not configured")

	// ErrUnknownProvider is returned by New for a provider it cannot build.
	ErrUnknownProvider = errors.New("llm: unknown provider")

	// ErrEmptyResponse is returned by Complete when the model answers with
	// nothing but whitespace.
	ErrEmptyResponse = errors.New("llm: empty response from model")
)

// Config selects and authenticates a provider.
type Config struct {
	// Provider is one of Providers. Empty means ProviderGoogle.
	Provider string
	// APIKey authenticates against hosted providers. Ollama ignores it.
	APIKey string
	// Model overrides the provider's default model.
	Model string
	// BaseURL overrides the API endpoint (OpenAI-compatible gateways,
	// a non-default Ollama server).
	BaseURL string
}

// Client sends prompts to a langchaingo model.
// It is safe for concurrent use and is meant to be built once at startup.
type Client struct {
	provider string
	model    llms.Model
}

// New builds a Client for cfg.Provider.
// No network call is made; authentication problems surface on the first
// Complete.
func New(ctx context.Context, cfg Config) (*Client, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderGoogle
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultModels[provider]
	}
	if provider != ProviderOllama && cfg.APIKey == "" {
		if _, known := defaultModels[provider]; known {
			return nil, fmt.Errorf("llm.New: %s: %w", provider, ErrNoAPIKey)
		}
	}

	var (
		model llms.Model
		err   error
	)
	switch provider {
	case ProviderGoogle:
		model, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(modelName),
		)
	case ProviderOpenAI:
		opts := []openai.Option{openai.WithToken(cfg.APIKey), openai.WithModel(modelName)}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		model, err = openai.New(opts...)
	case ProviderAnthropic:
		opts := []anthropic.Option{anthropic.WithToken(cfg.APIKey), anthropic.WithModel(modelName)}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		model, err = anthropic.New(opts...)
	case ProviderOllama:
		opts := []ollama.Option{ollama.WithModel(modelName)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		model, err = ollama.New(opts...)
	default:
		return nil, fmt.Errorf("llm.New: %q: %w", cfg.Provider, ErrUnknownProvider)
	}
	if err != nil {
		return nil, fmt.Errorf("llm.New: %s: %w", provider, err)
	}

	return NewFromModel(provider, model), nil
}

// NewFromModel wraps an already constructed langchaingo model.
func NewFromModel(provider string, model llms.Model) *Client {
	return &Client{provider: provider, model: model}
}

// Provider returns the provider name the client was built for.
func (c *Client) Provider() string { return c.provider }

// Complete sends prompt as a single user message and returns the trimmed
// text of the first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt)
	if err != nil {
		return "", fmt.Errorf("llm.Client.Complete: %s: %w", c.provider, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("llm.Client.Complete: %s: %w", c.provider, ErrEmptyResponse)
	}
	return text, nil
}

// Unavailable stands in for a Client that could not be built. Every
// Complete fails with Reason, so callers degrade the same way they would on
// a failed request.
type Unavailable struct {
	Reason error
}

// Complete always returns u.Reason.
func (u Unavailable) Complete(context.Context, string) (string, error) {
	if u.Reason == nil {
		return "", errors.New("llm: no provider configured")
	}
	return "", u.Reason
}
