// Package llm provides the completion gateway to an OpenAI-compatible API.
package llm

import "context"

// ChatMessage is a role/content pair sent upstream.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the interface for completion API operations.
type Client interface {
	// Complete sends the ordered history upstream as a streamed chat
	// completion and returns the fragments accumulated into one string.
	Complete(ctx context.Context, model string, messages []ChatMessage) (string, error)
}

// Ensure HTTPClient implements Client interface.
var _ Client = (*HTTPClient)(nil)
