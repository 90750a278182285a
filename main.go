package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lichen2025/chatgate/internal/adapter/llm"
	"github.com/lichen2025/chatgate/internal/config"
	"github.com/lichen2025/chatgate/internal/service"
	"github.com/lichen2025/chatgate/internal/store"
	transport "github.com/lichen2025/chatgate/internal/transport/http"
	"github.com/lichen2025/chatgate/policy"
)

func main() {
	// Load configuration
	cfgPath := os.Getenv("CHATGATE_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting chatgate...")
	log.Printf("HTTP address: %s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Database: %s", cfg.Database.Path)
	log.Printf("Completion API: %s (model %s)", cfg.OpenAI.BaseURL, cfg.OpenAI.Model)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Seed the admin account with a single precomputed hash.
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	if err := db.UpsertAdminUser(context.Background(), cfg.Admin.Username, string(hash)); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// Initialize completion client. No per-call timeout: a chat turn
	// completes or fails with the upstream call.
	llmClient := llm.NewLLMClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, 0)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize service
	svc := service.New(db, llmClient, cfg, policyEngine)

	// Create server
	server, err := transport.NewServer(svc, db, cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("chatgate started on port %d", cfg.Server.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down chatgate...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("chatgate stopped")
}
