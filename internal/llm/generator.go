// Package llm is the model-invocation boundary for insight generation. A
// Generator takes a fully specified request (model id, prompt, temperature,
// output cap) and returns text or fails; the concrete provider behind it is
// interchangeable. All HTTP providers wrap their calls in a circuit breaker
// so a dead upstream fails fast instead of eating the retry budget.
package llm

import "context"

// Request is one model invocation. All fields are chosen by the caller;
// providers apply no defaults beyond transport concerns.
type Request struct {
	Model       string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Generator is the single call signature the insight client depends on.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface. Used by tests
// to stub providers.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
