package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lichen2025/chatgate/internal/domain"
	"github.com/lichen2025/chatgate/policy"
)

// CreateSession creates a new session for the given client IP, subject
// to the IP cooldown policy. On success the session row and its system
// prompt message are persisted together and the session id is returned.
func (s *Service) CreateSession(ctx context.Context, ip string) (string, error) {
	now := epochNow()

	recent, err := s.store.FindRecentSessionByIP(ctx, ip, now-s.config.Session.IPCooldown)
	if err != nil {
		return "", fmt.Errorf("failed to check ip cooldown: %w", err)
	}

	recentCount := 0
	if recent != nil {
		recentCount = 1
	}
	decision, err := s.policyEngine.Evaluate(ctx, policy.CreateInput{
		Action:         "create",
		RecentSessions: recentCount,
	})
	if err != nil {
		return "", err
	}
	if decision == policy.DecisionCooldown {
		return "", ErrRateLimited
	}

	session := &domain.Session{
		SessionID:    uuid.New().String(),
		IP:           ip,
		CreatedAt:    now,
		LastActive:   now,
		MessageCount: 0,
	}
	if err := s.store.CreateSession(ctx, session, s.config.Prompts.System); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return session.SessionID, nil
}
