// Package insight turns structured analysis results into natural-language
// business insight text. The client is layered for resilience: a bounded
// response cache, an ordered three-model fallback roster with per-model
// retries, and a deterministic static fallback assembled from the payload
// itself. Generate never returns an error; the caller always receives
// business-relevant text regardless of upstream availability.
package insight

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/dataglance/dataglance/internal/catalog"
	"github.com/dataglance/dataglance/internal/config"
	"github.com/dataglance/dataglance/internal/llm"
)

// Client generates insight text with caching, retries, and model fallback.
//
// Worst-case external calls per request: 3 models x (1 + Retries) attempts.
// With the default Retries of 2 that is the documented bound of 9.
type Client struct {
	gen     llm.Generator
	roster  Roster
	cache   *responseCache
	limiter *rate.Limiter

	retries int
	backoff time.Duration
	sleep   func(time.Duration) // replaced in tests
}

// Option customizes a Client.
type Option func(*Client)

// WithClock overrides the cache's time source. Test hook for TTL expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.cache.now = now }
}

// WithSleep overrides the backoff sleep. Test hook.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Client) { c.sleep = sleep }
}

// NewClient creates an insight client over the given generator.
func NewClient(gen llm.Generator, cfg config.InsightConfig, opts ...Option) *Client {
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 2
	}
	c := &Client{
		gen:     gen,
		roster:  DefaultRoster(cfg),
		cache:   newResponseCache(cfg.CacheMaxEntries, cfg.CacheTTL),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		retries: cfg.Retries,
		backoff: cfg.RetryBackoff,
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate produces insight text for a structured analysis payload.
//
// The call walks a fixed chain: build a deterministic prompt, check the
// cache, then try each roster model in order with bounded retries, and
// finally fall back to static text built from the payload's own numbers.
// Identical (payload, domain, analysisType) calls within the cache TTL
// return byte-identical text without touching the network.
func (c *Client) Generate(ctx context.Context, payload map[string]any, domain catalog.DomainID, analysisType string) string {
	prompt := BuildPrompt(payload, domain, analysisType)
	preferred := c.roster.preferred(analysisType)
	key := cacheKey(prompt, preferred.ID, string(domain), analysisType)

	if text, ok := c.cache.get(key); ok {
		return text
	}

	for _, model := range c.roster.order(analysisType) {
		text, err := c.callModel(ctx, model, prompt)
		if err != nil {
			log.Printf("insight: model %s (%s) failed: %v", model.Name, model.ID, err)
			continue
		}
		c.cache.put(key, text)
		return text
	}

	return staticFallback(payload, domain)
}

// callModel invokes one model with the configured retry budget: the initial
// attempt plus c.retries more, separated by a fixed backoff.
func (c *Client) callModel(ctx context.Context, model ModelSpec, prompt string) (string, error) {
	req := llm.Request{
		Model:       model.ID,
		Prompt:      prompt,
		Temperature: model.Temperature,
		MaxTokens:   model.MaxTokens,
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			c.sleep(c.backoff)
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
		text, err := c.gen.Generate(ctx, req)
		if err == nil && text != "" {
			return text, nil
		}
		if err == nil {
			err = errEmptyResponse
		}
		lastErr = err
	}
	return "", lastErr
}

// CacheLen reports the number of live cache entries.
func (c *Client) CacheLen() int {
	return c.cache.len()
}

// ClearCache drops all cached responses.
func (c *Client) ClearCache() {
	c.cache.lru.Purge()
}

var errEmptyResponse = errors.New("model returned empty response")
