// README: LLM client selection from config; returns nil when the chosen provider has no credentials.
package infra

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"voyage/internal/ai"
	"voyage/internal/config"
)

// NewLLMClient builds the configured provider's client. A nil client with a nil
// error means mock-only operation. release must be called on shutdown.
func NewLLMClient(ctx context.Context, cfg config.LLMConfig, log zerolog.Logger) (client ai.Client, release func(), err error) {
	release = func() {}
	switch cfg.Provider {
	case ai.ProviderGemini:
		settings, ok := cfg.Gemini()
		if !ok {
			log.Warn().Str("provider", cfg.Provider).Msg("llm credentials missing, itineraries will use the mock generator")
			return nil, release, nil
		}
		gc, err := ai.NewGeminiClient(ctx, settings, log)
		if err != nil {
			return nil, release, fmt.Errorf("gemini client: %w", err)
		}
		return gc, gc.Close, nil
	default:
		settings, ok := cfg.Ark()
		if !ok {
			log.Warn().Str("provider", cfg.Provider).Msg("llm credentials missing, itineraries will use the mock generator")
			return nil, release, nil
		}
		return ai.NewArkClient(settings, log), release, nil
	}
}
