package service

import "github.com/lichen2025/chatgate/internal/domain"

// trimHistory bounds the history sent upstream by total content length
// in characters. It drops the second-oldest message until the budget is
// met or a single message remains; index 0 holds the system prompt and
// is never evicted. Histories of zero or one message are returned
// unchanged regardless of length.
func trimHistory(history []domain.Message, maxChars int) []domain.Message {
	total := 0
	for _, msg := range history {
		total += len(msg.Content)
	}

	for total > maxChars && len(history) > 1 {
		total -= len(history[1].Content)
		history = append(history[:1], history[2:]...)
	}

	return history
}
