package generation

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"domatui/audio"
)

// Transcriber turns a recorded clip into text for submission.
type Transcriber interface {
	Transcribe(ctx context.Context, clip *audio.Clip) (string, error)
}

// WhisperTranscriber posts clips to a Whisper-compatible transcription API
// (OpenAI's audio endpoint shape, also served by local faster-whisper
// servers).
type WhisperTranscriber struct {
	client openai.Client
	model  string
}

// NewWhisperTranscriber creates a transcriber. baseURL may point at a
// local Whisper server; the API key is optional in that case.
func NewWhisperTranscriber(baseURL, apiKey, model string) (*WhisperTranscriber, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("transcription URL is required")
	}
	if model == "" {
		model = "whisper-1"
	}

	opts := []option.RequestOption{option.WithBaseURL(baseURL)}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	return &WhisperTranscriber{client: openai.NewClient(opts...), model: model}, nil
}

// Transcribe implements Transcriber.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, clip *audio.Clip) (string, error) {
	if clip == nil || len(clip.Data) == 0 {
		return "", fmt.Errorf("nothing to transcribe")
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(t.model),
		File:  openai.File(bytes.NewReader(clip.Data), "clip.webm", clip.MIME),
	})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
