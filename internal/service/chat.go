package service

import (
	"context"
	"fmt"

	"github.com/lichen2025/chatgate/internal/adapter/llm"
	"github.com/lichen2025/chatgate/internal/domain"
	"github.com/lichen2025/chatgate/policy"
)

// Chat runs one chat turn: validates the session, persists the user
// message, sends the trimmed history upstream and records the reply.
//
// The expiry check happens before the user message is persisted. If the
// upstream call fails afterwards, the already-persisted user message is
// kept; that matches the documented behavior, it is not an oversight.
func (s *Service) Chat(ctx context.Context, sessionID, message string) (string, error) {
	now := epochNow()

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return "", ErrSessionNotFound
	}

	decision, err := s.policyEngine.Evaluate(ctx, policy.ChatInput{
		Action:         "chat",
		MessageCount:   session.MessageCount,
		MaxMessages:    s.config.Session.MaxMessages,
		AgeSeconds:     now - session.CreatedAt,
		TimeoutSeconds: s.config.Session.Timeout,
	})
	if err != nil {
		return "", err
	}
	if decision == policy.DecisionExpired {
		return "", ErrSessionExpired
	}

	userMsg := &domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   message,
		Timestamp: now,
	}
	if err := s.store.CreateMessage(ctx, userMsg); err != nil {
		return "", fmt.Errorf("failed to persist user message: %w", err)
	}

	history, err := s.store.GetMessages(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load history: %w", err)
	}
	history = trimHistory(history, s.config.Session.MaxContextChars)

	outbound := make([]llm.ChatMessage, len(history))
	for i, msg := range history {
		outbound[i] = llm.ChatMessage{Role: msg.Role, Content: msg.Content}
	}

	reply, err := s.llmClient.Complete(ctx, s.config.OpenAI.Model, outbound)
	if err != nil {
		return "", err
	}

	replyMsg := &domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Content:   reply,
		Timestamp: epochNow(),
	}
	if err := s.store.FinishTurn(ctx, replyMsg, replyMsg.Timestamp); err != nil {
		return "", fmt.Errorf("failed to persist reply: %w", err)
	}

	return reply, nil
}
