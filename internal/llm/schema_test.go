package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entrySchema = &Schema{
	Name: "test-entry",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"meaning": map[string]any{"type": "string", "minLength": 1},
			"note":    map[string]any{"type": "string"},
			"level":   map[string]any{"type": "string", "enum": []any{"N5", "N4", "N3"}},
		},
		"required":             []any{"meaning", "note"},
		"additionalProperties": false,
	},
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{"complete", `{"meaning":"cat","note":"猫がいる。","level":"N5"}`, true},
		{"optional omitted", `{"meaning":"cat","note":""}`, true},
		{"missing required", `{"meaning":"cat"}`, false},
		{"wrong type", `{"meaning":3,"note":""}`, false},
		{"empty meaning", `{"meaning":"","note":""}`, false},
		{"bad enum", `{"meaning":"cat","note":"","level":"N9"}`, false},
		{"extra field", `{"meaning":"cat","note":"","reading":"neko"}`, false},
		{"not json", `meaning: cat`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(entrySchema, json.RawMessage(tt.content))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var invalid *ErrInvalidResponse
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.content, string(invalid.Content))
		})
	}
}

func TestCompileSchema_Cached(t *testing.T) {
	a, err := compileSchema(entrySchema)
	require.NoError(t, err)
	b, err := compileSchema(entrySchema)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestCompileSchema_Broken(t *testing.T) {
	broken := &Schema{Name: "test-broken", Definition: map[string]any{"type": 12}}
	err := validateResponse(broken, json.RawMessage(`{}`))
	require.Error(t, err)
	var invalid *ErrInvalidResponse
	assert.False(t, errors.As(err, &invalid), "a broken schema is not the model's fault")
}

func TestStructured(t *testing.T) {
	req := Request{Schema: entrySchema}
	resp, err := structured(req, json.RawMessage(`{"meaning":"cat","note":""}`), "m", StopEnd, Usage{TotalTokens: 3})
	require.NoError(t, err)
	assert.Equal(t, "m", resp.Model)
	assert.Equal(t, 3, resp.Usage.TotalTokens)

	_, err = structured(req, json.RawMessage(`{"meaning":"cat","note":""}`), "m", StopMaxTokens, Usage{})
	var trunc *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &trunc, "truncation is reported even when the cut happens to parse")

	resp, err = structured(Request{}, json.RawMessage("free text"), "m", StopMaxTokens, Usage{})
	require.NoError(t, err)
	assert.Equal(t, StopMaxTokens, resp.StopReason)
}
