package ai

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestNewDefaultsToDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "nil config", cfg: nil},
		{name: "not enabled", cfg: &Config{Provider: ProviderGemini}},
		{name: "explicitly disabled", cfg: &Config{Enabled: true, Provider: ProviderDisabled}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := New(context.Background(), tt.cfg, zap.NewNop())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := gen.(Disabled); !ok {
				t.Fatalf("expected the disabled variant, got %T", gen)
			}
		})
	}
}

func TestNewLocalProvider(t *testing.T) {
	cfg := &Config{
		Enabled:  true,
		Provider: ProviderLocal,
		Local:    &LocalConfig{BaseURL: "http://127.0.0.1:11434", Model: "llama3.1"},
	}

	gen, err := New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.Name() != ProviderLocal {
		t.Fatalf("expected local provider, got %s", gen.Name())
	}
	if gen.Model() != "llama3.1" {
		t.Fatalf("expected configured model, got %s", gen.Model())
	}
}

func TestNewRejectsBadConfigurations(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "unsupported provider", cfg: &Config{Enabled: true, Provider: "openai"}},
		{name: "gemini without settings", cfg: &Config{Enabled: true, Provider: ProviderGemini}},
		{name: "local without settings", cfg: &Config{Enabled: true, Provider: ProviderLocal}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(context.Background(), tt.cfg, zap.NewNop()); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestDisabledGeneratesNothing(t *testing.T) {
	out, err := Disabled{}.GenerateContent(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}
