package analysis

import (
	"context"
	"log"

	"github.com/dataglance/dataglance/internal/insight"
)

// Module is a pluggable analysis function. Modules are pure with respect to
// the registry: they read the request and return a result or an error.
type Module func(ctx context.Context, req *Request) (*Result, error)

// Registry maps question ids to modules. It is populated once at start-up
// from an explicit table and treated as read-only afterwards; there is no
// directory scanning or dynamic discovery, so the dependency graph stays
// static and testable.
type Registry struct {
	modules map[string]Module
	generic Module
}

// NewRegistry creates a registry with the built-in modules registered and
// the insight-backed generic handler installed as the fallback.
func NewRegistry(insights *insight.Client) *Registry {
	r := &Registry{
		modules: make(map[string]Module),
		generic: genericModule(insights),
	}
	for id, m := range builtinModules() {
		r.Register(id, m)
	}
	return r
}

// Register installs a module under its question id. Later registrations
// replace earlier ones.
func (r *Registry) Register(id string, m Module) {
	r.modules[id] = m
}

// Has reports whether a module is registered for the id.
func (r *Registry) Has(id string) bool {
	_, ok := r.modules[id]
	return ok
}

// QuestionIDs returns the registered question ids.
func (r *Registry) QuestionIDs() []string {
	out := make([]string, 0, len(r.modules))
	for id := range r.modules {
		out = append(out, id)
	}
	return out
}

// Dispatch routes the request to its module and returns the normalized
// result. An unknown question id, and a registered module that fails, both
// degrade to the generic handler rather than returning an error: every
// question gets an answer with a non-empty summary.
func (r *Registry) Dispatch(ctx context.Context, req *Request) *Result {
	if m, ok := r.modules[req.Question]; ok {
		result, err := m(ctx, req)
		if err == nil && result != nil && result.Summary != "" {
			return result
		}
		if err != nil {
			log.Printf("analysis: module %q failed: %v; using generic analysis", req.Question, err)
		}
	}

	result, err := r.generic(ctx, req)
	if err != nil || result == nil || result.Summary == "" {
		// The generic handler is built on the insight client, which never
		// fails; this branch exists only to uphold the contract if a custom
		// generic handler is installed.
		return &Result{Summary: "Analysis completed. No additional detail is available for this question."}
	}
	return result
}
