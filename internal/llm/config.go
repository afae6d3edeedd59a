package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects one provider and how to reach it.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter" or
	// "mock".
	Provider string
	APIKey   string

	// Model is a friendly alias (e.g. "claude-haiku") or a provider model
	// id. Empty selects the provider default.
	Model string

	// BaseURL overrides the provider endpoint, e.g. for an OpenAI-compatible
	// gateway.
	BaseURL string

	Retry RetryConfig

	// Timeout bounds a whole Generate call, retries included. Zero means no
	// deadline beyond the caller's context.
	Timeout time.Duration
}

// RetryConfig configures exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

type providerSpec struct {
	keyEnv       string
	defaultModel string
	baseURL      string
	aliases      map[string]string
}

var providers = map[string]providerSpec{
	"anthropic": {
		keyEnv:       "ANTHROPIC_API_KEY",
		defaultModel: "claude-haiku",
		aliases: map[string]string{
			"claude-haiku":  "claude-haiku-4-5-20251001",
			"claude-sonnet": "claude-sonnet-4-5-20250929",
		},
	},
	"openai": {
		keyEnv:       "OPENAI_API_KEY",
		defaultModel: "gpt-4o-mini",
		aliases: map[string]string{
			"gpt-mini": "gpt-4.1-mini",
			"gpt-nano": "gpt-4.1-nano",
		},
	},
	"gemini": {
		keyEnv:       "GEMINI_API_KEY",
		defaultModel: "gemini-flash",
		aliases: map[string]string{
			"gemini-flash":      "gemini-2.5-flash",
			"gemini-flash-lite": "gemini-2.5-flash-lite",
			"gemini-pro":        "gemini-2.5-pro",
		},
	},
	"openrouter": {
		keyEnv:       "OPENROUTER_API_KEY",
		defaultModel: "google/gemini-2.5-flash",
		baseURL:      "https://openrouter.ai/api/v1",
	},
	"mock": {},
}

// discoveryOrder is the order DiscoverConfig probes API key variables in.
var discoveryOrder = []string{"gemini", "openai", "anthropic", "openrouter"}

// DefaultRetry is three attempts starting at one second.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2,
	}
}

// NewConfig returns defaults for provider with the given key.
func NewConfig(provider, apiKey string) Config {
	return Config{
		Provider: provider,
		APIKey:   apiKey,
		Retry:    DefaultRetry(),
		Timeout:  30 * time.Second,
	}
}

// KeyFromEnv reads the conventional API key variable for provider, e.g.
// ANTHROPIC_API_KEY.
func KeyFromEnv(provider string) string {
	spec, ok := providers[provider]
	if !ok || spec.keyEnv == "" {
		return ""
	}
	return os.Getenv(spec.keyEnv)
}

// DiscoverConfig returns a Config for the first provider whose API key
// variable is set, probing Gemini, OpenAI, Anthropic, then OpenRouter.
func DiscoverConfig() (Config, bool) {
	for _, name := range discoveryOrder {
		if k := KeyFromEnv(name); k != "" {
			return NewConfig(name, k), true
		}
	}
	return Config{}, false
}

// Validate checks that the provider is known and has a key.
func (c Config) Validate() error {
	spec, ok := providers[c.Provider]
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Provider != "mock" && c.APIKey == "" {
		return fmt.Errorf("an API key is required for the %s provider (set llm.api_key or %s)", c.Provider, spec.keyEnv)
	}
	return nil
}

// ModelID resolves Model, or the provider default, through the alias table.
// Unknown names pass through so any provider model id can be used.
func (c Config) ModelID() string {
	spec := providers[c.Provider]
	name := c.Model
	if name == "" {
		name = spec.defaultModel
	}
	if id, ok := spec.aliases[name]; ok {
		return id
	}
	return name
}

func (c Config) endpoint() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return providers[c.Provider].baseURL
}
