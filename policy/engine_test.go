package policy

import (
	"context"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return engine
}

func TestEvaluateCreate(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	decision, err := engine.Evaluate(ctx, CreateInput{Action: "create", RecentSessions: 0})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != DecisionAllow {
		t.Fatalf("expected allow, got %q", decision)
	}

	decision, err = engine.Evaluate(ctx, CreateInput{Action: "create", RecentSessions: 1})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != DecisionCooldown {
		t.Fatalf("expected cooldown, got %q", decision)
	}
}

func TestEvaluateChat(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input ChatInput
		want  string
	}{
		{"fresh session", ChatInput{Action: "chat", MessageCount: 0, MaxMessages: 10, AgeSeconds: 5, TimeoutSeconds: 3600}, DecisionAllow},
		{"at message limit", ChatInput{Action: "chat", MessageCount: 10, MaxMessages: 10, AgeSeconds: 5, TimeoutSeconds: 3600}, DecisionExpired},
		{"past timeout", ChatInput{Action: "chat", MessageCount: 0, MaxMessages: 10, AgeSeconds: 3601, TimeoutSeconds: 3600}, DecisionExpired},
		{"exactly at timeout", ChatInput{Action: "chat", MessageCount: 0, MaxMessages: 10, AgeSeconds: 3600, TimeoutSeconds: 3600}, DecisionAllow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := engine.Evaluate(ctx, tc.input)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if decision != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, decision)
			}
		})
	}
}
