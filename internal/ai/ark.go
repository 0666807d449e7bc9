// README: Volcano Ark bots client over the OpenAI-compatible chat completions API.
package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const (
	ProviderArk = "ark"

	DefaultArkBaseURL  = "https://ark.cn-beijing.volces.com"
	DefaultArkModel    = "bot-20251111100821-mms64"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000

	arkBotsPath = "/api/v3/bots"
)

// ArkSettings are the values needed to reach an Ark bot. BaseURL and APIKey are
// required; the rest have defaults.
type ArkSettings struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

func (s ArkSettings) Configured() bool {
	return strings.TrimSpace(s.BaseURL) != "" && strings.TrimSpace(s.APIKey) != ""
}

func (s ArkSettings) withDefaults() ArkSettings {
	if s.Model == "" {
		s.Model = DefaultArkModel
	}
	if s.Temperature == 0 {
		s.Temperature = DefaultTemperature
	}
	if s.MaxTokens == 0 {
		s.MaxTokens = DefaultMaxTokens
	}
	return s
}

// ArkClient posts to {BaseURL}/api/v3/bots/chat/completions with bearer auth.
type ArkClient struct {
	settings ArkSettings
	client   *openai.Client
	log      zerolog.Logger
}

// NewArkClient never fails; an unconfigured client reports ErrConfigurationMissing
// from Complete.
func NewArkClient(settings ArkSettings, log zerolog.Logger) *ArkClient {
	settings = settings.withDefaults()
	c := &ArkClient{settings: settings, log: log.With().Str("provider", ProviderArk).Logger()}
	if settings.Configured() {
		cfg := openai.DefaultConfig(settings.APIKey)
		cfg.BaseURL = strings.TrimRight(settings.BaseURL, "/") + arkBotsPath
		c.client = openai.NewClientWithConfig(cfg)
	}
	return c
}

func (c *ArkClient) Provider() string { return ProviderArk }

func (c *ArkClient) Complete(ctx context.Context, prompt string) (*Completion, error) {
	if c.client == nil {
		c.log.Warn().Msg("ark base url or api key not set")
		return nil, ErrConfigurationMissing
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.settings.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.settings.Temperature,
		MaxTokens:   c.settings.MaxTokens,
	})
	if err != nil {
		err = classifyOpenAIError(err)
		c.log.Warn().Err(err).Str("model", c.settings.Model).Msg("ark completion failed")
		return nil, err
	}

	out := &Completion{
		ID:    resp.ID,
		Model: resp.Model,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
		Choices: make([]Choice, len(resp.Choices)),
	}
	for i, ch := range resp.Choices {
		out.Choices[i] = Choice{
			Index:        ch.Index,
			Message:      Message{Role: ch.Message.Role, Content: ch.Message.Content},
			FinishReason: string(ch.FinishReason),
		}
	}
	c.log.Debug().Int("choices", len(out.Choices)).Int("total_tokens", out.Usage.TotalTokens).Msg("ark completion")
	return out, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &HTTPError{Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &HTTPError{Status: reqErr.HTTPStatusCode, Message: reqErr.HTTPStatus}
	}
	return &NetworkError{Err: err}
}
