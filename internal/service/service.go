// Package service implements the session lifecycle manager.
package service

import (
	"time"

	"github.com/lichen2025/chatgate/internal/adapter/llm"
	"github.com/lichen2025/chatgate/internal/config"
	"github.com/lichen2025/chatgate/internal/store"
	"github.com/lichen2025/chatgate/policy"
)

type Service struct {
	store        store.Store
	llmClient    llm.Client
	config       *config.Config
	policyEngine *policy.Engine
}

func New(store store.Store, llmClient llm.Client, cfg *config.Config, policyEngine *policy.Engine) *Service {
	return &Service{
		store:        store,
		llmClient:    llmClient,
		config:       cfg,
		policyEngine: policyEngine,
	}
}

// epochNow returns the wall clock as seconds since epoch, sub-second
// precision included so messages written in one request stay ordered.
func epochNow() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
