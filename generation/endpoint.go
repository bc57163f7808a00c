package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// EndpointGenerator speaks the minimal generation protocol: POST
// {"prompt": ...} and read back {"generatedText": ...} on success or
// {"error": ...} with a non-2xx status on failure.
type EndpointGenerator struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewEndpointGenerator validates the endpoint URL. The client carries no
// timeout; cancellation, if any, comes from the caller's context.
func NewEndpointGenerator(endpoint, apiKey string) (*EndpointGenerator, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("generation endpoint URL is required")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid generation endpoint URL: %w", err)
	}
	return &EndpointGenerator{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{},
	}, nil
}

type endpointRequest struct {
	Prompt string `json:"prompt"`
}

type endpointResponse struct {
	GeneratedText string `json:"generatedText"`
	Error         string `json:"error,omitempty"`
}

// Generate implements Generator. Any non-2xx status is reported as
// ErrRemoteGeneration with the backend's error text when it sent one.
func (g *EndpointGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(endpointRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteGeneration, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrRemoteGeneration, err)
	}

	var parsed endpointResponse
	// The error body may not be JSON at all; keep the raw text as detail.
	decodeErr := json.Unmarshal(data, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := parsed.Error
		if detail == "" {
			detail = strings.TrimSpace(string(data))
		}
		return "", fmt.Errorf("%w: status %d: %s", ErrRemoteGeneration, resp.StatusCode, detail)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: malformed response: %v", ErrRemoteGeneration, decodeErr)
	}

	return strings.TrimSpace(parsed.GeneratedText), nil
}
