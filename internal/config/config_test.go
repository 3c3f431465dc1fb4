package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "openrouter", cfg.LLM.Provider)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)

	assert.Equal(t, "openai/gpt-oss-20b:free", cfg.Insight.PrimaryModel)
	assert.Equal(t, "deepseek/deepseek-chat-v3.1:free", cfg.Insight.SecondaryModel)
	assert.Equal(t, "mistralai/mistral-7b-instruct:free", cfg.Insight.FallbackModel)

	assert.InDelta(t, 0.3, cfg.Insight.PrimaryTemperature, 1e-9)
	assert.InDelta(t, 0.2, cfg.Insight.SecondaryTemperature, 1e-9)
	assert.InDelta(t, 0.4, cfg.Insight.FallbackTemperature, 1e-9)

	assert.Equal(t, 800, cfg.Insight.PrimaryMaxTokens)
	assert.Equal(t, 1000, cfg.Insight.SecondaryMaxTokens)
	assert.Equal(t, 600, cfg.Insight.FallbackMaxTokens)

	assert.Equal(t, time.Hour, cfg.Insight.CacheTTL)
	assert.Equal(t, 2, cfg.Insight.Retries)
	assert.Equal(t, time.Second, cfg.Insight.RetryBackoff)

	assert.InDelta(t, 0.6, cfg.Mapper.FuzzyThreshold, 1e-9)
	assert.Empty(t, cfg.Catalog.Path)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("DATAGLANCE_LLM_PROVIDER", "ollama")
	t.Setenv("DATAGLANCE_API_KEY", "secret")
	t.Setenv("DATAGLANCE_PRIMARY_MODEL", "my/model")
	t.Setenv("DATAGLANCE_RETRIES", "5")
	t.Setenv("DATAGLANCE_CACHE_TTL", "30m")
	t.Setenv("DATAGLANCE_FUZZY_THRESHOLD", "0.8")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
	assert.Equal(t, "my/model", cfg.Insight.PrimaryModel)
	assert.Equal(t, 5, cfg.Insight.Retries)
	assert.Equal(t, 30*time.Minute, cfg.Insight.CacheTTL)
	assert.InDelta(t, 0.8, cfg.Mapper.FuzzyThreshold, 1e-9)
}

func TestLoadConfigIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("DATAGLANCE_RETRIES", "many")
	t.Setenv("DATAGLANCE_CACHE_TTL", "soon")
	t.Setenv("DATAGLANCE_FUZZY_THRESHOLD", "high")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Insight.Retries)
	assert.Equal(t, time.Hour, cfg.Insight.CacheTTL)
	assert.InDelta(t, 0.6, cfg.Mapper.FuzzyThreshold, 1e-9)
}
