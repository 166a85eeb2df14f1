package llm

import (
	"context"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"paperscan/internal/model"
)

// OpenAIGenerator adapts the OpenAI chat-completions API to the Generator
// contract.
type OpenAIGenerator struct {
	client    openai.Client
	modelName string
}

// NewOpenAIGenerator returns a generator backed by the given API key.
func NewOpenAIGenerator(apiKey, modelName string) *OpenAIGenerator {
	if modelName == "" {
		modelName = "gpt-4"
	}
	return &OpenAIGenerator{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		modelName: modelName,
	}
}

// Name implements Generator.
func (g *OpenAIGenerator) Name() model.Provider { return model.ProviderGPT4 }

// Generate sends the prompt as a single user message and returns the first
// choice's content.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(maxOutputTokens),
	})
	if err != nil {
		return "", &ProviderError{Provider: g.Name(), Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: g.Name(), Err: ErrEmptyCompletion}
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &ProviderError{Provider: g.Name(), Err: ErrEmptyCompletion}
	}
	return text, nil
}

var _ Generator = (*OpenAIGenerator)(nil)
