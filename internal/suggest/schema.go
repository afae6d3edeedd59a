package suggest

import "github.com/abhisek/tango/internal/llm"

// SuggestionSchema defines the JSON schema for card suggestion responses.
var SuggestionSchema = &llm.Schema{
	Name:        "card-suggestion",
	Description: "The meaning of a vocabulary term and one short example sentence",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"meaning": map[string]any{
				"type":        "string",
				"description": "A short gloss of the term, a few words at most",
			},
			"note": map[string]any{
				"type":        "string",
				"description": "One natural example sentence using the term, in the source language",
			},
		},
		"required":             []any{"meaning", "note"},
		"additionalProperties": false,
	},
}
