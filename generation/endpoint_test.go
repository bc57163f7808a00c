package generation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestEndpointGeneratorSuccess(t *testing.T) {
	var gotPrompt string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req endpointRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		gotPrompt = req.Prompt
		json.NewEncoder(w).Encode(endpointResponse{GeneratedText: "  generated reply \n"})
	}))
	defer srv.Close()

	g, err := NewEndpointGenerator(srv.URL, "test-key")
	if err != nil {
		t.Fatalf("NewEndpointGenerator: %v", err)
	}

	reply, err := g.Generate(context.Background(), "hello backend")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "generated reply" {
		t.Errorf("reply = %q", reply)
	}
	if gotPrompt != "hello backend" {
		t.Errorf("backend received prompt %q", gotPrompt)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestEndpointGeneratorNonSuccessStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		detail string
	}{
		{"structured error", http.StatusInternalServerError, `{"error":"API token not configured"}`, "API token not configured"},
		{"model loading", http.StatusServiceUnavailable, `{"error":"Model is loading, please try again in a moment"}`, "Model is loading"},
		{"plain text error", http.StatusBadGateway, "upstream exploded", "upstream exploded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			g, err := NewEndpointGenerator(srv.URL, "")
			if err != nil {
				t.Fatalf("NewEndpointGenerator: %v", err)
			}

			_, err = g.Generate(context.Background(), "prompt")
			if !errors.Is(err, ErrRemoteGeneration) {
				t.Fatalf("error = %v, want ErrRemoteGeneration", err)
			}
			if !strings.Contains(err.Error(), tt.detail) {
				t.Errorf("error %q does not carry detail %q", err, tt.detail)
			}
		})
	}
}

func TestEndpointGeneratorUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before use

	g, err := NewEndpointGenerator(srv.URL, "")
	if err != nil {
		t.Fatalf("NewEndpointGenerator: %v", err)
	}
	if _, err := g.Generate(context.Background(), "prompt"); !errors.Is(err, ErrRemoteGeneration) {
		t.Errorf("error = %v, want ErrRemoteGeneration", err)
	}
}

func TestEndpointGeneratorRequiresURL(t *testing.T) {
	if _, err := NewEndpointGenerator("", ""); err == nil {
		t.Error("expected error for missing endpoint URL")
	}
}
