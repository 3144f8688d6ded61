package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/sahilmgandhi/rtk/internal/platform/logger"
)

// GenerativeClient abstracts the Gemini generative AI client for testability.
type GenerativeClient interface {
	// GenerateContent sends a prompt and returns a response.
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ClientFactory creates a GenerativeClient. Production code uses
// DefaultClientFactory; tests inject a factory that returns a mock.
type ClientFactory func(ctx context.Context, apiKey string) (GenerativeClient, error)

// genaiClient wraps the real genai.Client to satisfy GenerativeClient.
type genaiClient struct {
	inner *genai.Client
}

func (g *genaiClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.inner.Models.GenerateContent(ctx, model, contents, config)
}

// DefaultClientFactory creates a real Gemini API client.
func DefaultClientFactory(ctx context.Context, apiKey string) (GenerativeClient, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &genaiClient{inner: c}, nil
}

// GeminiClient implements Client using the Google Gemini API.
type GeminiClient struct {
	apiKey  string
	model   string
	factory ClientFactory
}

// NewGeminiClient creates a new GeminiClient.
// The apiKey must be non-empty; callers should validate before construction.
func NewGeminiClient(apiKey, model string, factory ClientFactory) *GeminiClient {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if factory == nil {
		factory = DefaultClientFactory
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		factory: factory,
	}
}

const (
	maxRetries     = 3
	requestTimeout = 30 * time.Second
	initialBackoff = 1 * time.Second
)

// Summarize sends the output to Gemini and returns the condensed report.
// Retries up to 3 times with exponential backoff (1s → 2s → 4s).
func (c *GeminiClient) Summarize(ctx context.Context, command, output string) (string, error) {
	log := logger.FromContext(ctx)
	log.Info("starting LLM summarization", "model", c.model)
	start := time.Now()

	client, err := c.factory(ctx, c.apiKey)
	if err != nil {
		return "", fmt.Errorf("creating Gemini client: %w", err)
	}

	prompt := BuildPrompt(command, ClampOutput(output))
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0)),
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := range maxRetries {
		log.Debug("LLM request attempt", "attempt", attempt+1, "model", c.model)

		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		resp, err := client.GenerateContent(reqCtx, c.model, genai.Text(prompt), config)
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			log.Warn("LLM request failed, retrying",
				"attempt", attempt+1,
				"error", err,
				"backoff", backoff,
			)

			select {
			case <-ctx.Done():
				return "", fmt.Errorf("summarization cancelled: %w", ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		text, err := extractText(resp)
		if err != nil {
			return "", fmt.Errorf("extracting response text: %w", err)
		}

		log.Info("LLM summarization complete",
			"model", c.model,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return text, nil
	}

	return "", fmt.Errorf("summarization failed after %d attempts: %w", maxRetries, lastErr)
}

// extractText pulls the text content from a Gemini response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("empty response from Gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content parts in response")
	}
	part := candidate.Content.Parts[0]
	if part.Text == "" {
		return "", errors.New("empty text in response part")
	}
	return part.Text, nil
}
