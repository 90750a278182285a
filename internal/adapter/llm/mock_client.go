package llm

import (
	"context"
	"fmt"
)

// MockClient is a mock implementation of Client for local development.
type MockClient struct{}

// NewMockClient creates a new mock completion client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements Client interface.
var _ Client = (*MockClient)(nil)

// Complete returns a canned reply derived from the last user message.
func (m *MockClient) Complete(ctx context.Context, model string, messages []ChatMessage) (string, error) {
	var lastUserMessage string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			lastUserMessage = messages[i].Content
			break
		}
	}

	if lastUserMessage == "" {
		return "[MOCK] This is a mock response from the completion client.", nil
	}

	return fmt.Sprintf("[MOCK] Received your message: %q. This is a mock response.", truncate(lastUserMessage, 100)), nil
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
