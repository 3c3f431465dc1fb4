package insight

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataglance/dataglance/internal/catalog"
	"github.com/dataglance/dataglance/internal/config"
	"github.com/dataglance/dataglance/internal/llm"
)

// testConfig keeps test runs fast: unlimited rate, no backoff sleeping.
func testConfig() config.InsightConfig {
	return config.InsightConfig{
		PrimaryModel:   "primary-model",
		SecondaryModel: "secondary-model",
		FallbackModel:  "fallback-model",

		PrimaryTemperature:   0.3,
		SecondaryTemperature: 0.2,
		FallbackTemperature:  0.4,

		PrimaryMaxTokens:   800,
		SecondaryMaxTokens: 1000,
		FallbackMaxTokens:  600,

		CacheTTL:        time.Hour,
		CacheMaxEntries: 64,
		Retries:         2,
		RetryBackoff:    time.Millisecond,
		RequestsPerSec:  10000,
	}
}

func noSleep(time.Duration) {}

func TestGenerateCachesIdenticalRequests(t *testing.T) {
	calls := 0
	gen := llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (string, error) {
		calls++
		return "insight text", nil
	})
	c := NewClient(gen, testConfig(), WithSleep(noSleep))

	payload := map[string]any{"total_revenue": 1000.0}
	first := c.Generate(context.Background(), payload, catalog.DomainRetail, "sales_summary")
	second := c.Generate(context.Background(), payload, catalog.DomainRetail, "sales_summary")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second call must be served from cache")
	assert.Equal(t, 1, c.CacheLen())
}

func TestGenerateCacheKeyCoversInputs(t *testing.T) {
	gen := llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (string, error) {
		return "text for " + req.Model, nil
	})
	c := NewClient(gen, testConfig(), WithSleep(noSleep))

	payload := map[string]any{"rows": 10}
	c.Generate(context.Background(), payload, catalog.DomainRetail, "sales_summary")
	c.Generate(context.Background(), payload, catalog.DomainRestaurant, "sales_summary")
	c.Generate(context.Background(), map[string]any{"rows": 11}, catalog.DomainRetail, "sales_summary")

	assert.Equal(t, 3, c.CacheLen())
}

func TestGenerateFallbackOrder(t *testing.T) {
	var tried []string
	gen := llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (string, error) {
		tried = append(tried, req.Model)
		if req.Model == "fallback-model" {
			return "fallback answered", nil
		}
		return "", errors.New("model down")
	})
	cfg := testConfig()
	cfg.Retries = 0
	c := NewClient(gen, cfg, WithSleep(noSleep))

	text := c.Generate(context.Background(), map[string]any{}, catalog.DomainRetail, "sales_summary")

	assert.Equal(t, "fallback answered", text)
	assert.Equal(t, []string{"primary-model", "secondary-model", "fallback-model"}, tried)
}

func TestGenerateReasoningPrefersSecondary(t *testing.T) {
	var first string
	gen := llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (string, error) {
		if first == "" {
			first = req.Model
		}
		return "ok", nil
	})
	c := NewClient(gen, testConfig(), WithSleep(noSleep))

	c.Generate(context.Background(), map[string]any{}, catalog.DomainRetail, "custom_analysis")
	assert.Equal(t, "secondary-model", first)
}

func TestGenerateRetriesBeforeFallingOver(t *testing.T) {
	attempts := 0
	slept := 0
	gen := llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("transient")
		}
		return "recovered", nil
	})
	c := NewClient(gen, testConfig(), WithSleep(func(time.Duration) { slept++ }))

	text := c.Generate(context.Background(), map[string]any{}, catalog.DomainRetail, "sales_summary")

	assert.Equal(t, "recovered", text)
	assert.Equal(t, 3, attempts, "initial attempt plus two retries on the primary model")
	assert.Equal(t, 2, slept)
}

func TestGenerateEmptyResponseIsFailure(t *testing.T) {
	perModel := make(map[string]int)
	gen := llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (string, error) {
		perModel[req.Model]++
		if req.Model == "secondary-model" {
			return "real text", nil
		}
		return "", nil // empty success must count as a failure
	})
	cfg := testConfig()
	cfg.Retries = 0
	c := NewClient(gen, cfg, WithSleep(noSleep))

	text := c.Generate(context.Background(), map[string]any{}, catalog.DomainRetail, "sales_summary")

	assert.Equal(t, "real text", text)
	assert.Equal(t, 1, perModel["primary-model"])
}

func TestGenerateNeverFails(t *testing.T) {
	gen := llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (string, error) {
		return "", errors.New("everything is down")
	})
	cfg := testConfig()
	cfg.Retries = 1
	c := NewClient(gen, cfg, WithSleep(noSleep))

	payload := map[string]any{
		"total_revenue": 54321.5,
		"revenue_stats": map[string]any{"transaction_count": 120},
	}
	text := c.Generate(context.Background(), payload, catalog.DomainRetail, "sales_summary")

	require.NotEmpty(t, text)
	assert.Contains(t, text, "54,321.50", "static fallback must surface payload numbers")
	assert.Contains(t, text, "transaction count")
	assert.Zero(t, c.CacheLen(), "fallback text must not be cached")
}

func TestGenerateTTLExpiry(t *testing.T) {
	calls := 0
	gen := llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (string, error) {
		calls++
		return "fresh", nil
	})

	current := time.Now()
	c := NewClient(gen, testConfig(),
		WithSleep(noSleep),
		WithClock(func() time.Time { return current }))

	payload := map[string]any{"rows": 5}
	c.Generate(context.Background(), payload, catalog.DomainRetail, "sales_summary")
	c.Generate(context.Background(), payload, catalog.DomainRetail, "sales_summary")
	assert.Equal(t, 1, calls)

	current = current.Add(2 * time.Hour)
	c.Generate(context.Background(), payload, catalog.DomainRetail, "sales_summary")
	assert.Equal(t, 2, calls, "expired entry must be recomputed")
}

func TestClearCache(t *testing.T) {
	gen := llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (string, error) {
		return "x", nil
	})
	c := NewClient(gen, testConfig(), WithSleep(noSleep))

	c.Generate(context.Background(), map[string]any{"a": 1}, catalog.DomainRetail, "t")
	require.Equal(t, 1, c.CacheLen())

	c.ClearCache()
	assert.Zero(t, c.CacheLen())
}

func TestBuildPromptDeterministic(t *testing.T) {
	payload := map[string]any{"b": 2, "a": 1, "c": map[string]any{"z": 3, "y": 4}}

	first := BuildPrompt(payload, catalog.DomainRetail, "sales_summary")
	second := BuildPrompt(payload, catalog.DomainRetail, "sales_summary")
	assert.Equal(t, first, second)

	assert.Contains(t, first, "retail e-commerce business")
	assert.Contains(t, first, "ANALYSIS TYPE: sales_summary")
}

func TestBuildPromptUnknownDomainUsesGeneralContext(t *testing.T) {
	prompt := BuildPrompt(map[string]any{}, catalog.DomainGeneral, "t")
	assert.Contains(t, prompt, "general business operations")
}

func TestStaticFallbackAlwaysNonEmpty(t *testing.T) {
	text := staticFallback(map[string]any{}, catalog.DomainRealEstate)
	require.NotEmpty(t, text)
	assert.Contains(t, text, "real estate")
	assert.Contains(t, text, "Recommendations")
}

func TestStaticFallbackDeterministicOrder(t *testing.T) {
	payload := map[string]any{"zeta": 1.0, "alpha": 2.0, "mid": 3.0}

	text := staticFallback(payload, catalog.DomainRetail)
	alphaIdx := strings.Index(text, "alpha")
	midIdx := strings.Index(text, "mid")
	zetaIdx := strings.Index(text, "zeta")
	assert.True(t, alphaIdx < midIdx && midIdx < zetaIdx, "metrics must appear in sorted key order")
}
