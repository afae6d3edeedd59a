// Package suggest fills in the meaning and an example note for a new card
// using an LLM provider.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/tango/internal/cards"
	"github.com/abhisek/tango/internal/llm"
)

// Purpose is the label attached to suggestion requests in the LLM event log.
const Purpose = "card-suggest"

// ErrEmptySuggestion is returned when the provider answers with no meaning.
var ErrEmptySuggestion = errors.New("suggest: provider returned an empty meaning")

// Suggestion is a proposed meaning and note for a term.
type Suggestion struct {
	Meaning string `json:"meaning"`
	Note    string `json:"note"`
}

// Suggester asks an LLM provider for card contents.
type Suggester struct {
	provider llm.Provider
	config   Config
}

// New creates a Suggester with the given provider and config.
func New(provider llm.Provider, cfg Config) *Suggester {
	return &Suggester{provider: provider, config: cfg}
}

// Suggest proposes a meaning and example note for term.
func (s *Suggester) Suggest(ctx context.Context, term string) (Suggestion, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return Suggestion{}, cards.ErrEmptyTerm
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt(s.config),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMessage(term)},
		},
		Schema:      SuggestionSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return Suggestion{}, fmt.Errorf("LLM suggestion failed: %w", err)
	}

	var out Suggestion
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Suggestion{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	out.Meaning = strings.TrimSpace(out.Meaning)
	out.Note = strings.TrimSpace(out.Note)
	if out.Meaning == "" {
		return Suggestion{}, ErrEmptySuggestion
	}
	out.Meaning = clip(out.Meaning, cards.MaxMeaningLen)
	out.Note = clip(out.Note, cards.MaxNoteLen)
	return out, nil
}

// clip truncates s to at most n runes.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
