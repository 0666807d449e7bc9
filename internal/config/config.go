// README: Config loader; VOYAGE_-prefixed environment with defaults for HTTP, DB, Redis, cache and LLM settings.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"voyage/internal/ai"
)

const envPrefix = "VOYAGE"

type HTTPConfig struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	GenerateTimeout time.Duration `envconfig:"GENERATE_TIMEOUT" default:"90s"`
}

type DBConfig struct {
	// DSN is optional; without it the expense routes are not mounted.
	DSN string `envconfig:"DSN"`
}

type RedisConfig struct {
	// Addr is optional; without it itinerary caching is off.
	Addr string `envconfig:"ADDR"`
}

type CacheConfig struct {
	TTL time.Duration `envconfig:"TTL" default:"1h"`
}

type LLMConfig struct {
	Provider string `envconfig:"LLM_PROVIDER" default:"ark"`

	ArkBaseURL     string  `envconfig:"ARK_BASE_URL" default:"https://ark.cn-beijing.volces.com"`
	ArkAPIKey      string  `envconfig:"ARK_API_KEY"`
	ArkModel       string  `envconfig:"ARK_MODEL" default:"bot-20251111100821-mms64"`
	ArkTemperature float32 `envconfig:"ARK_TEMPERATURE" default:"0.7"`
	ArkMaxTokens   int     `envconfig:"ARK_MAX_TOKENS" default:"2000"`

	GeminiAPIKey      string  `envconfig:"GEMINI_API_KEY"`
	GeminiModel       string  `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	GeminiTemperature float32 `envconfig:"GEMINI_TEMPERATURE" default:"0.7"`
	GeminiMaxTokens   int     `envconfig:"GEMINI_MAX_TOKENS" default:"2000"`
}

type Config struct {
	HTTP     HTTPConfig
	DB       DBConfig
	Redis    RedisConfig
	Cache    CacheConfig
	// LLM keys sit directly under the prefix (VOYAGE_ARK_API_KEY), so it is processed separately.
	LLM      LLMConfig `ignored:"true"`
	LogLevel string    `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads VOYAGE_* variables. Missing LLM credentials are not an error: the
// planner runs on the mock generator until they are set.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	if err := envconfig.Process(envPrefix, &cfg.LLM); err != nil {
		return Config{}, fmt.Errorf("process llm environment: %w", err)
	}
	if cfg.HTTP.GenerateTimeout <= 0 {
		return Config{}, fmt.Errorf("%s_HTTP_GENERATE_TIMEOUT must be positive, got %s", envPrefix, cfg.HTTP.GenerateTimeout)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	switch cfg.LLM.Provider {
	case ai.ProviderArk, ai.ProviderGemini:
	default:
		return Config{}, fmt.Errorf("unsupported %s_LLM_PROVIDER %q", envPrefix, cfg.LLM.Provider)
	}
	return cfg, nil
}

// Ark returns the Ark settings and whether both required values are present.
func (c LLMConfig) Ark() (ai.ArkSettings, bool) {
	s := ai.ArkSettings{
		BaseURL:     strings.TrimSpace(c.ArkBaseURL),
		APIKey:      strings.TrimSpace(c.ArkAPIKey),
		Model:       c.ArkModel,
		Temperature: c.ArkTemperature,
		MaxTokens:   c.ArkMaxTokens,
	}
	return s, s.Configured()
}

// Gemini returns the Gemini settings and whether an API key is present.
func (c LLMConfig) Gemini() (ai.GeminiSettings, bool) {
	s := ai.GeminiSettings{
		APIKey:      strings.TrimSpace(c.GeminiAPIKey),
		Model:       c.GeminiModel,
		Temperature: c.GeminiTemperature,
		MaxTokens:   c.GeminiMaxTokens,
	}
	return s, s.APIKey != ""
}

// Configured reports whether the selected provider has credentials.
func (c LLMConfig) Configured() bool {
	if c.Provider == ai.ProviderGemini {
		_, ok := c.Gemini()
		return ok
	}
	_, ok := c.Ark()
	return ok
}
