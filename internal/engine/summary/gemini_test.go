package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"
)

// mockGenerativeClient is a test double for GenerativeClient.
type mockGenerativeClient struct {
	responses []*genai.GenerateContentResponse
	errs      []error
	callCount int
}

func (m *mockGenerativeClient) GenerateContent(_ context.Context, _ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	idx := m.callCount
	m.callCount++
	if idx < len(m.errs) && m.errs[idx] != nil {
		return nil, m.errs[idx]
	}
	if idx < len(m.responses) {
		return m.responses[idx], nil
	}
	return nil, errors.New("no more responses configured")
}

// makeResponse creates a genai response with the given text part.
func makeResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: text},
			}}},
		},
	}
}

func TestGeminiClient_Summarize_Success(t *testing.T) {
	mock := &mockGenerativeClient{
		responses: []*genai.GenerateContentResponse{
			makeResponse("2 tests failed in pkg/a\nexit status 1"),
		},
	}
	factory := func(_ context.Context, _ string) (GenerativeClient, error) {
		return mock, nil
	}

	client := NewGeminiClient("fake-key", "test-model", factory)
	got, err := client.Summarize(context.Background(), "go test ./...", "FAIL output")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "2 tests failed") {
		t.Errorf("unexpected summary: %q", got)
	}
}

func TestGeminiClient_Summarize_FactoryError(t *testing.T) {
	factory := func(_ context.Context, _ string) (GenerativeClient, error) {
		return nil, errors.New("factory boom")
	}

	client := NewGeminiClient("key", "", factory)
	if _, err := client.Summarize(context.Background(), "cmd", "out"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestGeminiClient_Summarize_RetriesOnTransientError(t *testing.T) {
	mock := &mockGenerativeClient{
		errs: []error{
			errors.New("transient failure"),
			nil,
		},
		responses: []*genai.GenerateContentResponse{
			nil,
			makeResponse("all good"),
		},
	}
	factory := func(_ context.Context, _ string) (GenerativeClient, error) {
		return mock, nil
	}

	client := NewGeminiClient("key", "m", factory)
	got, err := client.Summarize(context.Background(), "cmd", "out")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "all good" {
		t.Errorf("unexpected summary: %q", got)
	}
	if mock.callCount != 2 {
		t.Errorf("expected 2 GenerateContent calls, got %d", mock.callCount)
	}
}

func TestGeminiClient_Summarize_EmptyResponse(t *testing.T) {
	mock := &mockGenerativeClient{
		responses: []*genai.GenerateContentResponse{
			{},
		},
	}
	factory := func(_ context.Context, _ string) (GenerativeClient, error) {
		return mock, nil
	}

	client := NewGeminiClient("key", "m", factory)
	if _, err := client.Summarize(context.Background(), "cmd", "out"); err == nil {
		t.Fatal("expected error for empty response")
	}
}
