package summary

import "context"

// MockClient is a test double for summary.Client.
type MockClient struct {
	Result string
	Err    error
}

// Summarize returns the configured result and error.
func (m *MockClient) Summarize(_ context.Context, _, _ string) (string, error) {
	return m.Result, m.Err
}
