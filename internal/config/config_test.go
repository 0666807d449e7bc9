package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("VOYAGE_ARK_API_KEY", "")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 90*time.Second, cfg.HTTP.GenerateTimeout)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "ark", cfg.LLM.Provider)
	assert.Equal(t, "bot-20251111100821-mms64", cfg.LLM.ArkModel)
	assert.InDelta(t, 0.7, cfg.LLM.ArkTemperature, 1e-6)
	assert.Equal(t, 2000, cfg.LLM.ArkMaxTokens)

	_, ok := cfg.LLM.Ark()
	assert.False(t, ok, "no api key means unconfigured")
	assert.False(t, cfg.LLM.Configured())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("VOYAGE_HTTP_ADDR", ":9999")
	t.Setenv("VOYAGE_DB_DSN", "postgres://localhost/voyage")
	t.Setenv("VOYAGE_REDIS_ADDR", "localhost:6379")
	t.Setenv("VOYAGE_CACHE_TTL", "10m")
	t.Setenv("VOYAGE_ARK_BASE_URL", "https://ark.example.com/")
	t.Setenv("VOYAGE_ARK_API_KEY", " key ")
	t.Setenv("VOYAGE_ARK_MAX_TOKENS", "1024")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, "postgres://localhost/voyage", cfg.DB.DSN)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)

	s, ok := cfg.LLM.Ark()
	require.True(t, ok)
	assert.Equal(t, "key", s.APIKey)
	assert.Equal(t, "https://ark.example.com/", s.BaseURL)
	assert.Equal(t, 1024, s.MaxTokens)
	assert.True(t, cfg.LLM.Configured())
}

func TestLoad_GeminiProvider(t *testing.T) {
	t.Setenv("VOYAGE_LLM_PROVIDER", "Gemini")
	t.Setenv("VOYAGE_GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	s, ok := cfg.LLM.Gemini()
	require.True(t, ok)
	assert.Equal(t, "gemini-2.0-flash", s.Model)
	assert.InDelta(t, 0.7, s.Temperature, 1e-6)
	assert.Equal(t, 2000, s.MaxTokens)
	assert.True(t, cfg.LLM.Configured())
}

func TestLoad_GeminiTuningIsSeparateFromArk(t *testing.T) {
	t.Setenv("VOYAGE_LLM_PROVIDER", "gemini")
	t.Setenv("VOYAGE_GEMINI_API_KEY", "g-key")
	t.Setenv("VOYAGE_ARK_TEMPERATURE", "0.1")
	t.Setenv("VOYAGE_ARK_MAX_TOKENS", "64")
	t.Setenv("VOYAGE_GEMINI_TEMPERATURE", "0.3")
	t.Setenv("VOYAGE_GEMINI_MAX_TOKENS", "4096")

	cfg, err := Load()
	require.NoError(t, err)
	s, ok := cfg.LLM.Gemini()
	require.True(t, ok)
	assert.InDelta(t, 0.3, s.Temperature, 1e-6)
	assert.Equal(t, 4096, s.MaxTokens)

	ark, _ := cfg.LLM.Ark()
	assert.InDelta(t, 0.1, ark.Temperature, 1e-6)
	assert.Equal(t, 64, ark.MaxTokens)
}

func TestLoad_RejectsNonPositiveGenerateTimeout(t *testing.T) {
	for _, v := range []string{"0", "0s", "-5s"} {
		t.Setenv("VOYAGE_HTTP_GENERATE_TIMEOUT", v)
		_, err := Load()
		assert.Error(t, err, "timeout %q", v)
	}
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("VOYAGE_LLM_PROVIDER", "parrot")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("VOYAGE_CACHE_TTL", "soon")
	_, err := Load()
	assert.Error(t, err)
}
