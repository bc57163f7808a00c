// Package generation defines the abstract interface for the remote
// text-generation collaborator.
//
// The conversational core is backend-agnostic: it hands a Generator one
// prompt and gets one reply back. Concrete backends cover the plain
// endpoint protocol ({"prompt"} in, {"generatedText"} out), any
// OpenAI-compatible chat API (DeepSeek by default), Anthropic, and a local
// Ollama server. NewGenerator builds one from config.
//
// No retry or timeout policy lives here; callers bound requests with the
// context they pass in.
package generation

import (
	"context"
	"errors"
	"fmt"
)

// ErrRemoteGeneration marks a backend error or non-success response. The
// coordinator treats it as recoverable.
var ErrRemoteGeneration = errors.New("text generation failed")

// Generator is the remote text-generation collaborator: one prompt in,
// one generated reply out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Backend identifies the generator implementation.
type Backend string

const (
	BackendEndpoint  Backend = "endpoint"
	BackendOpenAI    Backend = "openai"
	BackendAnthropic Backend = "anthropic"
	BackendOllama    Backend = "ollama"
)

// Config holds backend-specific configuration.
type Config struct {
	Backend Backend
	BaseURL string
	Model   string
	APIKey  string // unused for endpoint and ollama
}

// NewGenerator creates the configured backend.
func NewGenerator(cfg Config) (Generator, error) {
	var (
		g   Generator
		err error
	)
	switch cfg.Backend {
	case BackendEndpoint:
		g, err = NewEndpointGenerator(cfg.BaseURL, cfg.APIKey)
	case BackendOpenAI:
		g, err = NewOpenAIGenerator(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case BackendAnthropic:
		g, err = NewAnthropicGenerator(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case BackendOllama:
		g, err = NewOllamaGenerator(cfg.BaseURL, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown generation backend: %s", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}
