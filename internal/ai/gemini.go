// README: Gemini client; alternative provider selected by configuration.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	ProviderGemini     = "gemini"
	DefaultGeminiModel = "gemini-2.0-flash"
)

type GeminiSettings struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// GeminiClient implements Client using Google's Gemini models.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
	log    zerolog.Logger
}

// NewGeminiClient returns ErrConfigurationMissing when no API key is set.
func NewGeminiClient(ctx context.Context, settings GeminiSettings, log zerolog.Logger) (*GeminiClient, error) {
	if strings.TrimSpace(settings.APIKey) == "" {
		return nil, ErrConfigurationMissing
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(settings.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	name := settings.Model
	if name == "" {
		name = DefaultGeminiModel
	}
	model := client.GenerativeModel(name)

	// JSON mode keeps prose out of the answer; the extractor still copes if it leaks.
	model.ResponseMIMEType = "application/json"

	temp := settings.Temperature
	if temp == 0 {
		temp = DefaultTemperature
	}
	model.SetTemperature(temp)
	maxTokens := settings.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}
	model.SetMaxOutputTokens(int32(maxTokens))

	return &GeminiClient{
		client: client,
		model:  model,
		name:   name,
		log:    log.With().Str("provider", ProviderGemini).Logger(),
	}, nil
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() {
	c.client.Close()
}

func (c *GeminiClient) Provider() string { return ProviderGemini }

func (c *GeminiClient) Complete(ctx context.Context, prompt string) (*Completion, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		err = classifyGeminiError(err)
		c.log.Warn().Err(err).Str("model", c.name).Msg("gemini completion failed")
		return nil, err
	}

	return completionFromGemini(c.name, resp), nil
}

// completionFromGemini joins the text parts of each candidate; non-text parts are dropped.
func completionFromGemini(model string, resp *genai.GenerateContentResponse) *Completion {
	out := &Completion{Model: model}
	if resp == nil {
		return out
	}
	for _, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		var text strings.Builder
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if txt, ok := part.(genai.Text); ok {
					text.WriteString(string(txt))
				}
			}
		}
		out.Choices = append(out.Choices, Choice{
			Index:        int(cand.Index),
			Message:      Message{Role: "assistant", Content: text.String()},
			FinishReason: cand.FinishReason.String(),
		})
	}
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return out
}

func classifyGeminiError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &HTTPError{Status: gerr.Code, Message: gerr.Message}
	}
	return &NetworkError{Err: err}
}
