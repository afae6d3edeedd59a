package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2}
}

var okJSON = MockResponse{Content: json.RawMessage(`{"ok":true}`)}

func TestRetry(t *testing.T) {
	down := MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
	tests := []struct {
		name      string
		script    []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first try", []MockResponse{okJSON}, false, 1},
		{"transient then ok", []MockResponse{down, okJSON}, false, 2},
		{"rate limited then ok", []MockResponse{{Err: &ErrRateLimit{}}, okJSON}, false, 2},
		{"gives up", []MockResponse{down, down, down, okJSON}, true, 3},
		{"rejected not retried", []MockResponse{{Err: &ErrRejected{Status: 401}}, okJSON}, true, 1},
		{"truncation not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, okJSON}, true, 1},
		{"unclassified not retried", []MockResponse{{Err: errors.New("boom")}, okJSON}, true, 1},
		{"invalid retried once", []MockResponse{{Err: &ErrInvalidResponse{}}, okJSON}, false, 2},
		{"invalid twice fails", []MockResponse{{Err: &ErrInvalidResponse{}}, {Err: &ErrInvalidResponse{}}, okJSON}, true, 2},
		{"invalid then outage then ok", []MockResponse{{Err: &ErrInvalidResponse{}}, down, okJSON}, false, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.script...)
			resp, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetry_ContextCanceledDuringWait(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}}, okJSON)
	cfg := fastRetry()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := WithRetry(mock, cfg).Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_RetryAfterWins(t *testing.T) {
	r := &retryProvider{cfg: RetryConfig{MaxAttempts: 2, InitialWait: time.Hour, Multiplier: 2}}
	assert.Equal(t, 3*time.Millisecond, r.wait(0, &ErrRateLimit{RetryAfter: 3 * time.Millisecond}))
}

func TestRetry_BackoffBounds(t *testing.T) {
	r := &retryProvider{cfg: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}
	for range 50 {
		w := r.wait(0, errors.New("x"))
		assert.GreaterOrEqual(t, w, 80*time.Millisecond)
		assert.LessOrEqual(t, w, 120*time.Millisecond)

		w = r.wait(5, errors.New("x"))
		assert.LessOrEqual(t, w, 360*time.Millisecond)
	}
}

func TestRetry_ZeroAttemptsStillCalls(t *testing.T) {
	mock := NewMockProvider(okJSON)
	_, err := WithRetry(mock, RetryConfig{}).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

type blockingProvider struct{}

func (blockingProvider) ModelID() string { return "slow" }

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 10*time.Millisecond)
	assert.Equal(t, "slow", p.ModelID())

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
