package generation

import "testing"

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name: "endpoint backend",
			config: Config{
				Backend: BackendEndpoint,
				BaseURL: "https://example.com/functions/text-generation",
			},
			expectError: false,
		},
		{
			name: "endpoint backend without URL",
			config: Config{
				Backend: BackendEndpoint,
			},
			expectError: true,
		},
		{
			name: "openai backend with defaults",
			config: Config{
				Backend: BackendOpenAI,
				APIKey:  "test-key",
			},
			expectError: false,
		},
		{
			name: "openai backend without key",
			config: Config{
				Backend: BackendOpenAI,
			},
			expectError: true,
		},
		{
			name: "anthropic backend",
			config: Config{
				Backend: BackendAnthropic,
				Model:   "claude-sonnet-4-5-20250929",
				APIKey:  "test-key",
			},
			expectError: false,
		},
		{
			name: "ollama backend with defaults",
			config: Config{
				Backend: BackendOllama,
			},
			expectError: false,
		},
		{
			name: "unknown backend",
			config: Config{
				Backend: Backend("carrier-pigeon"),
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGenerator(tt.config)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.expectError && g == nil {
				t.Error("expected non-nil generator")
			}
			if tt.expectError && g != nil {
				t.Errorf("expected nil generator, got %T", g)
			}
		})
	}
}
