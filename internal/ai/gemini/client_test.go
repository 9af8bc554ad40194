package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func testGenerator(responses []func() (*genai.GenerateContentResponse, error)) (*Generator, *int) {
	calls := 0
	g := &Generator{
		modelName:  "gemini-2.5-flash",
		maxRetries: 2,
		logger:     zap.NewNop(),
	}
	g.generate = func(context.Context, string) (*genai.GenerateContentResponse, error) {
		next := responses[calls]
		calls++
		return next()
	}
	return g, &calls
}

func TestGenerateContentRetriesOnTemporaryError(t *testing.T) {
	originalDelay := retryBaseDelay
	retryBaseDelay = 0
	defer func() { retryBaseDelay = originalDelay }()

	tempErr := genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}
	g, calls := testGenerator([]func() (*genai.GenerateContentResponse, error){
		func() (*genai.GenerateContentResponse, error) { return nil, tempErr },
		func() (*genai.GenerateContentResponse, error) { return textResponse("retry ok"), nil },
	})

	output, err := g.GenerateContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output != "retry ok" {
		t.Fatalf("unexpected output: %q", output)
	}
	if *calls != 2 {
		t.Fatalf("expected 2 calls, got %d", *calls)
	}
}

func TestGenerateContentStopsAfterRetriesExhausted(t *testing.T) {
	originalDelay := retryBaseDelay
	retryBaseDelay = 0
	defer func() { retryBaseDelay = originalDelay }()

	tempErr := genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}
	g, calls := testGenerator([]func() (*genai.GenerateContentResponse, error){
		func() (*genai.GenerateContentResponse, error) { return nil, tempErr },
		func() (*genai.GenerateContentResponse, error) { return nil, tempErr },
	})

	if _, err := g.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected an error after retries are exhausted")
	}
	if *calls != 2 {
		t.Fatalf("expected exactly maxRetries calls, got %d", *calls)
	}
}

func TestGenerateContentDoesNotRetryPermanentErrors(t *testing.T) {
	permanent := genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"}
	g, calls := testGenerator([]func() (*genai.GenerateContentResponse, error){
		func() (*genai.GenerateContentResponse, error) { return nil, permanent },
		func() (*genai.GenerateContentResponse, error) { return textResponse("never reached"), nil },
	})

	if _, err := g.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected an error for a permanent failure")
	}
	if *calls != 1 {
		t.Fatalf("expected a single call, got %d", *calls)
	}
}

func TestGenerateContentDoesNotRetryQuotaExhaustion(t *testing.T) {
	quota := genai.APIError{
		Code:    http.StatusTooManyRequests,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "You exceeded your current quota",
	}
	g, calls := testGenerator([]func() (*genai.GenerateContentResponse, error){
		func() (*genai.GenerateContentResponse, error) { return nil, quota },
		func() (*genai.GenerateContentResponse, error) { return textResponse("never reached"), nil },
	})

	if _, err := g.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected a quota error to surface immediately")
	}
	if *calls != 1 {
		t.Fatalf("expected a single call, got %d", *calls)
	}
}

func TestGenerateContentRetriesPlainRateLimit(t *testing.T) {
	originalDelay := retryBaseDelay
	retryBaseDelay = 0
	defer func() { retryBaseDelay = originalDelay }()

	rateLimited := genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED", Message: "slow down"}
	g, calls := testGenerator([]func() (*genai.GenerateContentResponse, error){
		func() (*genai.GenerateContentResponse, error) { return nil, rateLimited },
		func() (*genai.GenerateContentResponse, error) { return textResponse("ok"), nil },
	})

	output, err := g.GenerateContent(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output != "ok" || *calls != 2 {
		t.Fatalf("expected a retry after a plain rate limit, got %q after %d calls", output, *calls)
	}
}

func TestGenerateContentRejectsEmptyPrompt(t *testing.T) {
	g, _ := testGenerator(nil)
	if _, err := g.GenerateContent(context.Background(), "   "); err == nil {
		t.Fatalf("expected an error for an empty prompt")
	}
}

func TestGenerateContentHonorsContextDuringBackoff(t *testing.T) {
	originalDelay := retryBaseDelay
	retryBaseDelay = time.Hour
	defer func() { retryBaseDelay = originalDelay }()

	tempErr := genai.APIError{Code: http.StatusBadGateway, Status: "BAD_GATEWAY"}
	g, _ := testGenerator([]func() (*genai.GenerateContentResponse, error){
		func() (*genai.GenerateContentResponse, error) { return nil, tempErr },
		func() (*genai.GenerateContentResponse, error) { return textResponse("never reached"), nil },
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.GenerateContent(ctx, "prompt"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestCollectTextJoinsParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "first"},
				{Text: "  "},
				{Text: "second"},
			}},
		}},
	}

	got, err := collectText(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "first\nsecond" {
		t.Fatalf("unexpected output: %q", got)
	}

	if _, err := collectText(&genai.GenerateContentResponse{}); err == nil {
		t.Fatalf("expected an error for an empty response")
	}
}
