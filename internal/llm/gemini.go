package llm

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"paperscan/internal/model"
)

// GeminiGenerator adapts the Gemini generate-content API to the Generator
// contract.
type GeminiGenerator struct {
	client    *genai.Client
	modelName string
}

// NewGeminiGenerator returns a generator backed by the given API key.
func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiGenerator{client: cl, modelName: modelName}, nil
}

// Name implements Generator.
func (g *GeminiGenerator) Name() model.Provider { return model.ProviderGemini }

// Close releases the underlying client connection.
func (g *GeminiGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Generate sends the prompt and flattens the first candidate's text parts
// into one string.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m := g.client.GenerativeModel(g.modelName)
	m.SetMaxOutputTokens(maxOutputTokens)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &ProviderError{Provider: g.Name(), Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &ProviderError{Provider: g.Name(), Err: ErrEmptyCompletion}
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", &ProviderError{Provider: g.Name(), Err: ErrEmptyCompletion}
	}
	return text, nil
}

var _ Generator = (*GeminiGenerator)(nil)
