// Package testutil provides configurable fakes for the generation
// collaborators.
package testutil

import (
	"context"
	"sync"

	"domatui/audio"
)

// MockGenerator implements generation.Generator with a configurable
// response function. Safe for concurrent use; the coordinator calls it
// from its dispatch goroutine.
type MockGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	mu    sync.Mutex
	calls []string
}

// NewMockGenerator echoes a canned reply by default.
func NewMockGenerator() *MockGenerator {
	m := &MockGenerator{}
	m.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "Mock reply", nil
	}
	return m
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, prompt)
	m.mu.Unlock()
	return m.GenerateFunc(ctx, prompt)
}

// Prompts returns every prompt received so far, in arrival order.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// MockTranscriber implements generation.Transcriber.
type MockTranscriber struct {
	TranscribeFunc func(ctx context.Context, clip *audio.Clip) (string, error)
}

func NewMockTranscriber(text string) *MockTranscriber {
	return &MockTranscriber{
		TranscribeFunc: func(ctx context.Context, clip *audio.Clip) (string, error) {
			return text, nil
		},
	}
}

func (m *MockTranscriber) Transcribe(ctx context.Context, clip *audio.Clip) (string, error) {
	return m.TranscribeFunc(ctx, clip)
}
