// Package config provides configuration management for Dataglance. It loads
// settings from environment variables with the DATAGLANCE_ prefix and
// provides sensible defaults for all configuration options, so the core
// works out of the box and every tuning knob that affects mapping or insight
// correctness is a named setting rather than a buried literal.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration settings for the Dataglance core.
type Config struct {
	LLM     LLMConfig
	Insight InsightConfig
	Mapper  MapperConfig
	Catalog CatalogConfig
}

// LLMConfig contains provider configuration for the model-invocation
// boundary.
type LLMConfig struct {
	Provider string        // LLM provider: openrouter, ollama (default: openrouter)
	APIKey   string        // API key for hosted providers
	BaseURL  string        // Override endpoint base URL
	Timeout  time.Duration // Per-attempt request timeout (default: 60s)
}

// InsightConfig contains the insight client's model roster and resilience
// settings. The three roster slots mirror the fallback order: primary,
// secondary, fallback.
type InsightConfig struct {
	PrimaryModel   string // default: openai/gpt-oss-20b:free
	SecondaryModel string // default: deepseek/deepseek-chat-v3.1:free
	FallbackModel  string // default: mistralai/mistral-7b-instruct:free

	PrimaryTemperature   float64 // default: 0.3
	SecondaryTemperature float64 // default: 0.2 (lower for reasoning tasks)
	FallbackTemperature  float64 // default: 0.4

	PrimaryMaxTokens   int // default: 800
	SecondaryMaxTokens int // default: 1000
	FallbackMaxTokens  int // default: 600

	CacheTTL        time.Duration // response cache TTL (default: 1h)
	CacheMaxEntries int           // bounded cache size (default: 512)
	Retries         int           // extra attempts per model (default: 2)
	RetryBackoff    time.Duration // fixed delay between attempts (default: 1s)
	RequestsPerSec  float64       // outbound rate limit (default: 2)
}

// MapperConfig contains column-mapping settings.
type MapperConfig struct {
	FuzzyThreshold float64 // minimum similarity for fuzzy matches (default: 0.6)
}

// CatalogConfig contains schema catalog settings.
type CatalogConfig struct {
	Path string // optional YAML catalog override; empty means built-in
}

// LoadConfig loads configuration from environment variables with defaults.
// All environment variables use the DATAGLANCE_ prefix.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		LLM: LLMConfig{
			Provider: getEnv("DATAGLANCE_LLM_PROVIDER", "openrouter"),
			APIKey:   getEnv("DATAGLANCE_API_KEY", ""),
			BaseURL:  getEnv("DATAGLANCE_BASE_URL", ""),
			Timeout:  getEnvDuration("DATAGLANCE_LLM_TIMEOUT", 60*time.Second),
		},
		Insight: InsightConfig{
			PrimaryModel:   getEnv("DATAGLANCE_PRIMARY_MODEL", "openai/gpt-oss-20b:free"),
			SecondaryModel: getEnv("DATAGLANCE_SECONDARY_MODEL", "deepseek/deepseek-chat-v3.1:free"),
			FallbackModel:  getEnv("DATAGLANCE_FALLBACK_MODEL", "mistralai/mistral-7b-instruct:free"),

			PrimaryTemperature:   getEnvFloat("DATAGLANCE_PRIMARY_TEMPERATURE", 0.3),
			SecondaryTemperature: getEnvFloat("DATAGLANCE_SECONDARY_TEMPERATURE", 0.2),
			FallbackTemperature:  getEnvFloat("DATAGLANCE_FALLBACK_TEMPERATURE", 0.4),

			PrimaryMaxTokens:   getEnvInt("DATAGLANCE_PRIMARY_MAX_TOKENS", 800),
			SecondaryMaxTokens: getEnvInt("DATAGLANCE_SECONDARY_MAX_TOKENS", 1000),
			FallbackMaxTokens:  getEnvInt("DATAGLANCE_FALLBACK_MAX_TOKENS", 600),

			CacheTTL:        getEnvDuration("DATAGLANCE_CACHE_TTL", time.Hour),
			CacheMaxEntries: getEnvInt("DATAGLANCE_CACHE_MAX_ENTRIES", 512),
			Retries:         getEnvInt("DATAGLANCE_RETRIES", 2),
			RetryBackoff:    getEnvDuration("DATAGLANCE_RETRY_BACKOFF", time.Second),
			RequestsPerSec:  getEnvFloat("DATAGLANCE_REQUESTS_PER_SEC", 2),
		},
		Mapper: MapperConfig{
			FuzzyThreshold: getEnvFloat("DATAGLANCE_FUZZY_THRESHOLD", 0.6),
		},
		Catalog: CatalogConfig{
			Path: getEnv("DATAGLANCE_CATALOG_PATH", ""),
		},
	}
	return cfg, nil
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default
// value. An unparseable value falls back to the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns a default
// value. An unparseable value falls back to the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable (Go duration
// syntax, e.g. "30s") or returns a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
