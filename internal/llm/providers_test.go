package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wordSchema = &Schema{
	Name:        "test-word",
	Description: "a word and its meaning",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"meaning": map[string]any{"type": "string"},
		},
		"required":             []any{"meaning"},
		"additionalProperties": false,
	},
}

func wordRequest(schema *Schema) Request {
	return Request{
		System:    "You write glossaries.",
		Messages:  []Message{{Role: RoleUser, Content: "猫"}},
		Schema:    schema,
		MaxTokens: 128,
	}
}

// fakeAPI serves status and body to every request and keeps the last
// request body.
func fakeAPI(t *testing.T, status int, body any) (url string, last *[]byte) {
	t.Helper()
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		switch b := body.(type) {
		case string:
			_, _ = io.WriteString(w, b)
		default:
			_ = json.NewEncoder(w).Encode(b)
		}
	}))
	t.Cleanup(srv.Close)
	return srv.URL, &got
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 40, "output_tokens": 12},
	}
}

func anthropicError(kind string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": kind}}
}

func TestAnthropic(t *testing.T) {
	newP := func(t *testing.T, status int, body any) (*anthropicProvider, *[]byte) {
		url, last := fakeAPI(t, status, body)
		cfg := NewConfig("anthropic", "test-key")
		cfg.BaseURL = url
		return newAnthropic(cfg), last
	}

	t.Run("structured output", func(t *testing.T) {
		p, last := newP(t, http.StatusOK, anthropicMessage(`{"meaning":"cat"}`, "end_turn"))
		resp, err := p.Generate(context.Background(), wordRequest(wordSchema))
		require.NoError(t, err)
		assert.JSONEq(t, `{"meaning":"cat"}`, string(resp.Content))
		assert.Equal(t, StopEnd, resp.StopReason)
		assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 12, TotalTokens: 52}, resp.Usage)
		assert.Contains(t, string(*last), `"claude-haiku-4-5-20251001"`)
		assert.Contains(t, string(*last), "You write glossaries.")
	})

	t.Run("schema mismatch", func(t *testing.T) {
		p, _ := newP(t, http.StatusOK, anthropicMessage(`{"gloss":"cat"}`, "end_turn"))
		_, err := p.Generate(context.Background(), wordRequest(wordSchema))
		var invalid *ErrInvalidResponse
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("truncated", func(t *testing.T) {
		p, _ := newP(t, http.StatusOK, anthropicMessage(`{"meaning":"ca`, "max_tokens"))
		_, err := p.Generate(context.Background(), wordRequest(wordSchema))
		var trunc *ErrMaxTokensExceeded
		assert.ErrorAs(t, err, &trunc)
	})

	t.Run("plain text without schema", func(t *testing.T) {
		p, _ := newP(t, http.StatusOK, anthropicMessage("cat", "end_turn"))
		resp, err := p.Generate(context.Background(), wordRequest(nil))
		require.NoError(t, err)
		assert.Equal(t, "cat", string(resp.Content))
	})

	t.Run("rate limited", func(t *testing.T) {
		p, _ := newP(t, http.StatusTooManyRequests, anthropicError("rate_limit_error"))
		_, err := p.Generate(context.Background(), wordRequest(nil))
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})

	t.Run("bad key", func(t *testing.T) {
		p, _ := newP(t, http.StatusUnauthorized, anthropicError("authentication_error"))
		_, err := p.Generate(context.Background(), wordRequest(nil))
		var rejected *ErrRejected
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, http.StatusUnauthorized, rejected.Status)
	})

	t.Run("server error", func(t *testing.T) {
		p, _ := newP(t, http.StatusInternalServerError, anthropicError("api_error"))
		_, err := p.Generate(context.Background(), wordRequest(nil))
		var down *ErrProviderUnavailable
		assert.ErrorAs(t, err, &down)
	})
}

func openaiCompletion(text, finish string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": text},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 20, "completion_tokens": 5, "total_tokens": 25},
	}
}

func openaiError(code string) map[string]any {
	return map[string]any{"error": map[string]any{"message": code, "type": code, "code": code}}
}

func TestOpenAI(t *testing.T) {
	newP := func(t *testing.T, provider string, status int, body any) (*openaiProvider, *[]byte) {
		url, last := fakeAPI(t, status, body)
		cfg := NewConfig(provider, "test-key")
		cfg.BaseURL = url
		return newOpenAI(cfg), last
	}

	t.Run("structured output", func(t *testing.T) {
		p, last := newP(t, "openai", http.StatusOK, openaiCompletion(`{"meaning":"cat"}`, "stop"))
		resp, err := p.Generate(context.Background(), wordRequest(wordSchema))
		require.NoError(t, err)
		assert.JSONEq(t, `{"meaning":"cat"}`, string(resp.Content))
		assert.Equal(t, "gpt-4o-mini", resp.Model)
		assert.Equal(t, 25, resp.Usage.TotalTokens)

		var sent map[string]any
		require.NoError(t, json.Unmarshal(*last, &sent))
		format := sent["response_format"].(map[string]any)
		assert.Equal(t, "json_schema", format["type"])
		msgs := sent["messages"].([]any)
		require.Len(t, msgs, 2)
		assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	})

	t.Run("openrouter model passes through", func(t *testing.T) {
		p, last := newP(t, "openrouter", http.StatusOK, openaiCompletion("cat", "stop"))
		_, err := p.Generate(context.Background(), wordRequest(nil))
		require.NoError(t, err)
		assert.Contains(t, string(*last), `"google/gemini-2.5-flash"`)
	})

	t.Run("truncated", func(t *testing.T) {
		p, _ := newP(t, "openai", http.StatusOK, openaiCompletion(`{"mea`, "length"))
		_, err := p.Generate(context.Background(), wordRequest(wordSchema))
		var trunc *ErrMaxTokensExceeded
		assert.ErrorAs(t, err, &trunc)
	})

	t.Run("not json", func(t *testing.T) {
		p, _ := newP(t, "openai", http.StatusOK, openaiCompletion("a cat", "stop"))
		_, err := p.Generate(context.Background(), wordRequest(wordSchema))
		var invalid *ErrInvalidResponse
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("rate limited", func(t *testing.T) {
		p, _ := newP(t, "openai", http.StatusTooManyRequests, openaiError("rate_limit_exceeded"))
		_, err := p.Generate(context.Background(), wordRequest(nil))
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})

	t.Run("unknown model", func(t *testing.T) {
		p, _ := newP(t, "openai", http.StatusNotFound, openaiError("model_not_found"))
		_, err := p.Generate(context.Background(), wordRequest(nil))
		var rejected *ErrRejected
		assert.ErrorAs(t, err, &rejected)
	})

	t.Run("server error", func(t *testing.T) {
		p, _ := newP(t, "openai", http.StatusBadGateway, openaiError("server_error"))
		_, err := p.Generate(context.Background(), wordRequest(nil))
		var down *ErrProviderUnavailable
		assert.ErrorAs(t, err, &down)
	})
}

func TestGemini(t *testing.T) {
	newP := func(t *testing.T, status int, body any) (*geminiProvider, *[]byte) {
		url, last := fakeAPI(t, status, body)
		cfg := NewConfig("gemini", "test-key")
		cfg.BaseURL = url
		p, err := newGemini(context.Background(), cfg)
		require.NoError(t, err)
		return p, last
	}
	candidate := func(text, finish string) map[string]any {
		return map[string]any{
			"candidates": []map[string]any{{
				"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
				"finishReason": finish,
			}},
			"usageMetadata": map[string]any{"promptTokenCount": 9, "candidatesTokenCount": 4, "totalTokenCount": 13},
			"modelVersion":  "gemini-2.5-flash",
		}
	}

	t.Run("structured output", func(t *testing.T) {
		p, last := newP(t, http.StatusOK, candidate(`{"meaning":"cat"}`, "STOP"))
		resp, err := p.Generate(context.Background(), wordRequest(wordSchema))
		require.NoError(t, err)
		assert.JSONEq(t, `{"meaning":"cat"}`, string(resp.Content))
		assert.Equal(t, Usage{InputTokens: 9, OutputTokens: 4, TotalTokens: 13}, resp.Usage)
		assert.Equal(t, "gemini-2.5-flash", resp.Model)
		assert.Contains(t, string(*last), "responseJsonSchema")
	})

	t.Run("truncated", func(t *testing.T) {
		p, _ := newP(t, http.StatusOK, candidate(`{"mea`, "MAX_TOKENS"))
		_, err := p.Generate(context.Background(), wordRequest(wordSchema))
		var trunc *ErrMaxTokensExceeded
		assert.ErrorAs(t, err, &trunc)
	})

	t.Run("rejected", func(t *testing.T) {
		p, _ := newP(t, http.StatusForbidden, "forbidden")
		_, err := p.Generate(context.Background(), wordRequest(nil))
		var rejected *ErrRejected
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, http.StatusForbidden, rejected.Status)
	})
}

func TestClassifyStatus(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	tests := []struct {
		status int
		want   any
	}{
		{0, &ErrProviderUnavailable{}},
		{http.StatusTooManyRequests, &ErrRateLimit{}},
		{http.StatusRequestTimeout, &ErrProviderUnavailable{}},
		{http.StatusBadRequest, &ErrRejected{}},
		{http.StatusServiceUnavailable, &ErrProviderUnavailable{}},
	}
	for _, tt := range tests {
		err := classifyStatus(tt.status, cause)
		assert.IsType(t, tt.want, err, "status %d", tt.status)
		assert.ErrorIs(t, err, cause)
	}
}
