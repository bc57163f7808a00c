package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Generation parameters matching the hosted endpoint this replaces.
const (
	openAIMaxTokens   = 1024
	openAITemperature = 0.7
)

// OpenAIGenerator talks to any OpenAI-compatible chat completion API.
// DeepSeek is the default backend, so no API beyond the chat completion
// shape is assumed.
type OpenAIGenerator struct {
	client openai.Client
	model  string
}

// NewOpenAIGenerator creates an OpenAI-compatible generator.
//
// Defaults: DeepSeek's API at https://api.deepseek.com with the
// deepseek-chat model. An API key is required.
func NewOpenAIGenerator(baseURL, apiKey, model string) (*OpenAIGenerator, error) {
	if baseURL == "" {
		baseURL = "https://api.deepseek.com"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required for the OpenAI-compatible backend")
	}
	if model == "" {
		model = "deepseek-chat"
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenAIGenerator{client: client, model: model}, nil
}

// Generate implements Generator with a single user-role completion.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(openAIMaxTokens),
		Temperature: openai.Float(openAITemperature),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", ErrRemoteGeneration)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
