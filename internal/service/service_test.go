package service

import (
	"context"
	"testing"

	"github.com/lichen2025/chatgate/internal/adapter/llm"
	"github.com/lichen2025/chatgate/internal/config"
	"github.com/lichen2025/chatgate/policy"
	"github.com/lichen2025/chatgate/tests/helpers"
)

// stubLLM is a scriptable completion client.
type stubLLM struct {
	reply string
	err   error
	calls int
}

func (s *stubLLM) Complete(ctx context.Context, model string, messages []llm.ChatMessage) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestService(t *testing.T, client llm.Client, mutate func(*config.Config)) *Service {
	t.Helper()

	cfg := config.Default()
	cfg.Prompts.System = "be nice"
	if mutate != nil {
		mutate(cfg)
	}

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to create policy engine: %v", err)
	}

	return New(helpers.NewTestSQLiteStore(t), client, cfg, engine)
}
