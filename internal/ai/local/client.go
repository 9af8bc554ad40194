// Package local implements the provider variant backed by a synchronous
// text-generation daemon on the local machine (an Ollama-compatible API).
package local

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "http://127.0.0.1:11434"
	defaultModel   = "llama3.1"
	generatePath   = "/api/generate"
)

type Client struct {
	baseURL    string
	model      string
	logger     *zap.Logger
	HTTPClient *http.Client
}

func NewClient(baseURL, model string, logger *zap.Logger) *Client {
	if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		model:   model,
		logger:  logger,
		HTTPClient: &http.Client{
			// The caller bounds the whole generation with its own context
			// timeout; this only guards against a wedged local socket.
			Timeout: 2 * time.Minute,
		},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// GenerateContent posts the prompt to the local daemon and returns its full
// response text.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", err
	}

	url := c.baseURL + generatePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("make request to local daemon", zap.String("url", url))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("local daemon request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode local daemon response: %w", err)
	}

	output := strings.TrimSpace(parsed.Response)
	if output == "" {
		return "", errors.New("local daemon returned empty response")
	}

	return output, nil
}

func (c *Client) Model() string { return c.model }

func (c *Client) Name() string { return "local" }
