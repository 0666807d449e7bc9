// README: Ark client tests against an httptest chat-completions endpoint.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "bot-test",
  "choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"destination\":\"京都\"}"}, "finish_reason": "stop"}],
  "usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

func newArk(t *testing.T, handler http.HandlerFunc) *ArkClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewArkClient(ArkSettings{BaseURL: srv.URL + "/", APIKey: "secret", Model: "bot-test"}, zerolog.Nop())
}

func TestArkClient_RequestShape(t *testing.T) {
	var got map[string]any
	client := newArk(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v3/bots/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(okBody))
	})

	c, err := client.Complete(context.Background(), "规划京都行程")
	require.NoError(t, err)

	assert.Equal(t, "bot-test", got["model"])
	assert.InDelta(t, 0.7, got["temperature"], 1e-6)
	assert.EqualValues(t, 2000, got["max_tokens"])
	msgs, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	assert.Equal(t, map[string]any{"role": "user", "content": "规划京都行程"}, msgs[0])
	if stream, ok := got["stream"]; ok {
		assert.Equal(t, false, stream)
	}

	require.Len(t, c.Choices, 1)
	assert.Equal(t, `{"destination":"京都"}`, c.Choices[0].Message.Content)
	assert.Equal(t, "stop", c.Choices[0].FinishReason)
	assert.Equal(t, 15, c.Usage.TotalTokens)
}

func TestArkClient_HTTPErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"plain 500", http.StatusInternalServerError, "upstream exploded"},
		{"openai shaped 401", http.StatusUnauthorized, `{"error":{"message":"bad key","type":"auth"}}`},
		{"429", http.StatusTooManyRequests, `{}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newArk(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := client.Complete(context.Background(), "p")
			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr), "got %T: %v", err, err)
			assert.Equal(t, tc.status, httpErr.Status)
		})
	}
}

func TestArkClient_UndecodableBodyIsNetworkError(t *testing.T) {
	client := newArk(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	_, err := client.Complete(context.Background(), "p")
	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr), "got %T: %v", err, err)
}

func TestArkClient_DeadlineIsNetworkError(t *testing.T) {
	client := newArk(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Complete(ctx, "p")
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr), "got %T: %v", err, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestArkClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewArkClient(ArkSettings{BaseURL: url, APIKey: "k"}, zerolog.Nop())
	_, err := client.Complete(context.Background(), "p")
	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr), "got %T: %v", err, err)
}

func TestArkClient_Unconfigured(t *testing.T) {
	for _, s := range []ArkSettings{
		{},
		{BaseURL: "https://ark.example.com"},
		{APIKey: "k"},
	} {
		client := NewArkClient(s, zerolog.Nop())
		_, err := client.Complete(context.Background(), "p")
		assert.ErrorIs(t, err, ErrConfigurationMissing)
	}
}
