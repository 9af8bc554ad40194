package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/strideware/fitmatch/internal/ai/gemini"
	"github.com/strideware/fitmatch/internal/ai/local"
	"github.com/strideware/fitmatch/internal/logger"
	"github.com/strideware/fitmatch/internal/secrets"
)

// Provider names accepted in configuration.
const (
	ProviderGemini   = "gemini"
	ProviderLocal    = "local"
	ProviderDisabled = "disabled"
)

// Generator is the text-generation provider boundary. Implementations must be
// safe for concurrent use.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
	Name() string
}

// Config selects and configures a provider variant.
type Config struct {
	Enabled        bool          `mapstructure:"enabled"`
	Provider       string        `mapstructure:"provider"`
	TimeoutSeconds int           `mapstructure:"timeout-seconds"`
	Gemini         *GeminiConfig `mapstructure:"gemini"`
	Local          *LocalConfig  `mapstructure:"local"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type LocalConfig struct {
	BaseURL string `mapstructure:"base-url"`
	Model   string `mapstructure:"model"`
}

// New builds the configured provider variant. It is called once at startup
// and the result is injected wherever generation is needed. A nil or disabled
// config yields the no-op variant, never an error.
func New(ctx context.Context, cfg *Config, log *zap.Logger) (Generator, error) {
	if cfg == nil || !cfg.Enabled {
		return Disabled{}, nil
	}

	switch strings.TrimSpace(strings.ToLower(cfg.Provider)) {
	case "", ProviderGemini:
		if cfg.Gemini == nil {
			return nil, fmt.Errorf("gemini configuration is required when the gemini provider is enabled")
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: cfg.Gemini.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		genLogger := logger.WithCommonFields(log, ProviderGemini, cfg.Gemini.Model)
		return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	case ProviderLocal:
		if cfg.Local == nil {
			return nil, fmt.Errorf("local configuration is required when the local provider is enabled")
		}
		genLogger := logger.WithCommonFields(log, ProviderLocal, cfg.Local.Model)
		return local.NewClient(cfg.Local.BaseURL, cfg.Local.Model, genLogger), nil
	case ProviderDisabled:
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

// Disabled is the no-op provider variant. It returns empty text so callers
// treat it exactly like a pass-through.
type Disabled struct{}

func (Disabled) GenerateContent(context.Context, string) (string, error) { return "", nil }

func (Disabled) Model() string { return "" }

func (Disabled) Name() string { return ProviderDisabled }
