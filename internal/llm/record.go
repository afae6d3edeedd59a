package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/tango/internal/store"
)

type purposeKey struct{}

// WithPurpose labels requests made with ctx, e.g. "card-suggest", so the
// event log can group them.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "unknown"
}

type recordingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
}

// WithRecording appends an LLM request event for every call to p. A failed
// append is logged and does not fail the call.
func WithRecording(p Provider, providerName string, events store.EventRepo) Provider {
	return &recordingProvider{inner: p, provider: providerName, events: events}
}

func (r *recordingProvider) ModelID() string { return r.inner.ModelID() }

func (r *recordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    r.provider,
		Model:       r.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		if resp.Model != "" {
			ev.Model = resp.Model
		}
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	// The caller's context may already be done; the event should still land.
	if appendErr := r.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); appendErr != nil {
		slog.Warn("record llm request", "purpose", ev.Purpose, "error", appendErr)
	}
	return resp, err
}

// transcript renders a request as labelled sections for the event log.
func transcript(req Request) string {
	var b strings.Builder
	section := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
