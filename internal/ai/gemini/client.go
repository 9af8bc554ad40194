package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/strideware/fitmatch/internal/utils"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultMaxRetries = 2
)

var retryBaseDelay = 2 * time.Second

// Generator wraps the Google GenAI client behind the provider interface. This
// is the cloud variant of the refinement provider.
type Generator struct {
	client     *genai.Client
	modelName  string
	maxRetries int
	logger     *zap.Logger

	// generate is swappable for tests.
	generate func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)
}

// NewGenerator creates a Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Generator{
		client:     client,
		modelName:  model,
		maxRetries: maxRetries,
		logger:     logger,
	}
	g.generate = func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
		return g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	}

	return g, nil
}

// GenerateContent sends the prompt to Gemini and returns the first textual
// response. Transient API errors are retried with a context-aware backoff up
// to maxRetries attempts.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.generate == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		resp, err := g.generate(ctx, prompt)
		if err == nil {
			return collectText(resp)
		}

		lastErr = err
		if !isRetryable(err) {
			return "", fmt.Errorf("generate content: %w", err)
		}

		if attempt < g.maxRetries {
			delay := retryBaseDelay * time.Duration(attempt)
			g.logger.Debug("retrying gemini request",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(err),
			)
			if waitErr := utils.WaitFor(ctx, delay); waitErr != nil {
				return "", waitErr
			}
		}
	}

	return "", fmt.Errorf("generate content after %d attempts: %w", g.maxRetries, lastErr)
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func (g *Generator) Name() string { return "gemini" }

func collectText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini api returned empty response")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

func isRetryable(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
			return true
		case http.StatusTooManyRequests:
			// Quota errors announcing long delays are not worth waiting out
			// inside a bounded request.
			return !strings.Contains(strings.ToLower(apiErr.Message), "quota")
		}
	}
	return false
}
