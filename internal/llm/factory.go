package llm

import (
	"context"

	"github.com/abhisek/tango/internal/store"
)

// NewProvider builds the provider cfg names. Calls pass through a deadline,
// then retries, then event recording when events is non-nil. The mock
// provider is returned bare.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var p Provider
	switch cfg.Provider {
	case "mock":
		return NewMockProvider(), nil
	case "anthropic":
		p = newAnthropic(cfg)
	case "openai", "openrouter":
		p = newOpenAI(cfg)
	case "gemini":
		g, err := newGemini(ctx, cfg)
		if err != nil {
			return nil, err
		}
		p = g
	}

	if events != nil {
		p = WithRecording(p, cfg.Provider, events)
	}
	p = WithRetry(p, cfg.Retry)
	if cfg.Timeout > 0 {
		p = WithTimeout(p, cfg.Timeout)
	}
	return p, nil
}
