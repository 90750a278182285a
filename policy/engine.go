// Package policy evaluates session gating rules with OPA.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Decisions returned by the session policy.
const (
	DecisionAllow    = "allow"
	DecisionCooldown = "cooldown"
	DecisionExpired  = "expired"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.session_policy.decision"),
		rego.Module("session_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// CreateInput is the policy input for session creation.
type CreateInput struct {
	Action         string `json:"action"`
	RecentSessions int    `json:"recent_sessions"`
}

// ChatInput is the policy input for a chat turn.
type ChatInput struct {
	Action         string  `json:"action"`
	MessageCount   int     `json:"message_count"`
	MaxMessages    int     `json:"max_messages"`
	AgeSeconds     float64 `json:"age_seconds"`
	TimeoutSeconds float64 `json:"timeout_seconds"`
}

// Evaluate runs the session policy against the input and returns the
// decision string. The policy defines a default, so an empty result set
// falls back to allow.
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return DecisionAllow, nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}

	return "", fmt.Errorf("unexpected policy result type %T", results[0].Expressions[0].Value)
}

// DefaultPolicy is the default session gating policy.
const DefaultPolicy = `
package session_policy

default decision := "allow"

# A session was created from this IP inside the cooldown window.
decision := "cooldown" if {
	input.action == "create"
	input.recent_sessions > 0
}

# The session used up its chat turns.
decision := "expired" if {
	input.action == "chat"
	input.message_count >= input.max_messages
}

# The session outlived its wall-clock timeout.
decision := "expired" if {
	input.action == "chat"
	input.age_seconds > input.timeout_seconds
}
`
