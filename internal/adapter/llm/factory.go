package llm

import (
	"log"
	"os"
	"time"
)

const (
	// EnvChatgateMode is the environment variable name for mode selection.
	EnvChatgateMode = "CHATGATE_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewLLMClient creates a completion client based on the CHATGATE_MODE
// environment variable. If CHATGATE_MODE=MOCK, returns a MockClient;
// otherwise returns a real HTTPClient.
func NewLLMClient(baseURL, apiKey string, timeout time.Duration) Client {
	if os.Getenv(EnvChatgateMode) == ModeMock {
		log.Println("CHATGATE_MODE=MOCK detected, using mock completion client")
		return NewMockClient()
	}

	return NewClient(baseURL, apiKey, timeout)
}
