package generation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaGenerator talks to a local Ollama server.
type OllamaGenerator struct {
	client *api.Client
	model  string
}

// NewOllamaGenerator creates an Ollama generator with the usual local
// defaults.
func NewOllamaGenerator(baseURL, model string) (*OllamaGenerator, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.1:latest"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	return &OllamaGenerator{
		client: api.NewClient(parsedURL, http.DefaultClient),
		model:  model,
	}, nil
}

// Generate implements Generator with a non-streamed chat request.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model: g.model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Stream: &stream,
	}

	var reply strings.Builder
	err := g.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		reply.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteGeneration, err)
	}
	return strings.TrimSpace(reply.String()), nil
}
