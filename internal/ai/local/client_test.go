package local

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestGenerateContent(t *testing.T) {
	var gotReq generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != generatePath {
			t.Errorf("expected path %s, got %s", generatePath, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "  ranked output  ", Done: true})
	}))
	defer server.Close()

	client := NewClient(server.URL, "llama3.1", zap.NewNop())
	out, err := client.GenerateContent(context.Background(), "rank these shoes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ranked output" {
		t.Fatalf("expected trimmed response text, got %q", out)
	}
	if gotReq.Model != "llama3.1" || gotReq.Stream {
		t.Fatalf("unexpected request payload: %+v", gotReq)
	}
}

func TestGenerateContentBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", zap.NewNop())
	if _, err := client.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected an error on non-200 status")
	}
}

func TestGenerateContentEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: "   ", Done: true})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", zap.NewNop())
	if _, err := client.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected an error on empty response text")
	}
}

func TestGenerateContentRejectsEmptyPrompt(t *testing.T) {
	client := NewClient("", "", zap.NewNop())
	if _, err := client.GenerateContent(context.Background(), "   "); err == nil {
		t.Fatalf("expected an error for an empty prompt")
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("  http://example.com/  ", "", nil)
	if client.baseURL != "http://example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", client.baseURL)
	}
	if client.Model() != defaultModel {
		t.Fatalf("expected default model, got %q", client.Model())
	}
}
