// README: Gemini client tests: response mapping and error classification.
package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestClassifyGeminiError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"wrapped quota error", fmt.Errorf("generate content: %w", &googleapi.Error{Code: 429, Message: "quota exceeded"}), 429},
		{"bad key", &googleapi.Error{Code: 400, Message: "API key not valid"}, 400},
		{"plain error", errors.New("connection reset by peer"), 0},
		{"deadline", context.DeadlineExceeded, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyGeminiError(tc.err)
			if tc.wantStatus != 0 {
				var httpErr *HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, tc.wantStatus, httpErr.Status)
				assert.NotEmpty(t, httpErr.Message)
				return
			}
			var netErr *NetworkError
			require.ErrorAs(t, err, &netErr)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestCompletionFromGemini(t *testing.T) {
	t.Run("nil response", func(t *testing.T) {
		c := completionFromGemini("gemini-2.0-flash", nil)
		assert.Equal(t, "gemini-2.0-flash", c.Model)
		assert.Empty(t, c.Choices)
		_, ok := ExtractJSON(c)
		assert.False(t, ok)
	})

	t.Run("no candidates", func(t *testing.T) {
		c := completionFromGemini("m", &genai.GenerateContentResponse{})
		assert.Empty(t, c.Choices)
		assert.Equal(t, Usage{}, c.Usage)
	})

	t.Run("nil content", func(t *testing.T) {
		c := completionFromGemini("m", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Index: 0, FinishReason: genai.FinishReasonSafety}},
		})
		require.Len(t, c.Choices, 1)
		assert.Equal(t, "", c.Choices[0].Message.Content)
		assert.Equal(t, genai.FinishReasonSafety.String(), c.Choices[0].FinishReason)
		_, ok := ExtractJSON(c)
		assert.False(t, ok)
	})

	t.Run("text parts joined and usage copied", func(t *testing.T) {
		c := completionFromGemini("m", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Index: 0,
				Content: &genai.Content{Role: "model", Parts: []genai.Part{
					genai.Text(`{"destination":`),
					genai.Blob{MIMEType: "image/png", Data: []byte{0x89}},
					genai.Text(`"京都"}`),
				}},
				FinishReason: genai.FinishReasonStop,
			}},
			UsageMetadata: &genai.UsageMetadata{PromptTokenCount: 12, CandidatesTokenCount: 7, TotalTokenCount: 19},
		})
		require.Len(t, c.Choices, 1)
		assert.Equal(t, "assistant", c.Choices[0].Message.Role)
		assert.Equal(t, `{"destination":"京都"}`, c.Choices[0].Message.Content)
		assert.Equal(t, Usage{PromptTokens: 12, CompletionTokens: 7, TotalTokens: 19}, c.Usage)

		candidate, ok := ExtractJSON(c)
		require.True(t, ok)
		assert.Equal(t, `{"destination":"京都"}`, candidate)
	})
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), GeminiSettings{APIKey: "  "}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrConfigurationMissing)
}
