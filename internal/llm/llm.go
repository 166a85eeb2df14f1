// Package llm adapts the configured LLM backends to one uniform
// text-generation contract: given a prompt, return generated text.
package llm

import (
	"context"
	"errors"
	"fmt"

	"paperscan/internal/config"
	"paperscan/internal/model"
)

// maxOutputTokens is the output ceiling applied to every backend so cost
// and latency stay bounded uniformly.
const maxOutputTokens = 4000

var (
	// ErrProviderNotConfigured means the selected backend has no credential.
	ErrProviderNotConfigured = errors.New("provider not configured")
	// ErrEmptyCompletion means the backend answered without usable text.
	ErrEmptyCompletion = errors.New("provider returned an empty completion")
)

// ProviderError wraps a backend transport or validation failure. No retry
// happens at this layer; a single attempt is surfaced to the caller.
type ProviderError struct {
	Provider model.Provider
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Generator is the single capability every backend implements.
type Generator interface {
	// Generate returns the model's text completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	// Name returns the provider identifier for logging and metadata.
	Name() model.Provider
}

// Registry holds the backends that were configured at process start.
// Selection happens once here, at the boundary; business logic never
// re-dispatches on a provider string.
type Registry struct {
	generators map[model.Provider]Generator
}

// NewRegistry builds the registry from config. Backends without an API key
// are left unregistered and surface as ErrProviderNotConfigured on Get.
func NewRegistry(ctx context.Context, cfg config.ProviderConfig) (*Registry, error) {
	r := &Registry{generators: make(map[model.Provider]Generator)}

	if cfg.OpenAIAPIKey != "" {
		r.generators[model.ProviderGPT4] = NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	if cfg.GeminiAPIKey != "" {
		g, err := NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("init gemini: %w", err)
		}
		r.generators[model.ProviderGemini] = g
	}

	return r, nil
}

// Register adds or replaces a backend. Exposed for tests and custom wiring.
func (r *Registry) Register(g Generator) {
	r.generators[g.Name()] = g
}

// Get returns the backend for the given provider choice.
func (r *Registry) Get(p model.Provider) (Generator, error) {
	g, ok := r.generators[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotConfigured, p)
	}
	return g, nil
}

// Configured lists the providers that currently have a backend.
func (r *Registry) Configured() []model.Provider {
	out := make([]model.Provider, 0, len(r.generators))
	for p := range r.generators {
		out = append(out, p)
	}
	return out
}

// Close releases backend clients that hold connections.
func (r *Registry) Close() {
	for _, g := range r.generators {
		if c, ok := g.(interface{ Close() error }); ok {
			_ = c.Close()
		}
	}
}
