// Package llm talks to hosted language models for structured JSON output.
// Providers are composed with decorators for event recording, retries and
// an overall deadline; see NewProvider.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured response per call.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the provider uses its native structured output mode and Content
	// is JSON that has been validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model requests are sent to.
	ModelID() string
}

// Request is a single-turn (or short multi-turn) prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, constrains the response to a JSON object.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema plus the name and description some providers
// require alongside it.
type Schema struct {
	// Name is kebab-case, e.g. "card-suggestion". It also keys the compiled
	// schema cache, so it must be unique per definition.
	Name        string
	Description string
	Definition  map[string]any
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// structured finishes a provider response. Output cut off by the token
// limit is reported as ErrMaxTokensExceeded when a schema was requested,
// since truncated JSON can never validate.
func structured(req Request, content json.RawMessage, model, stop string, usage Usage) (*Response, error) {
	if req.Schema != nil {
		if stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}
