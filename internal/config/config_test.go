package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Session.MaxContextChars != 4096 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9000
session:
  ip_cooldown: 5
  max_messages: 3
  timeout: 120
prompts:
  system: custom prompt
admin:
  username: root
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Fatalf("unexpected port: %d", cfg.Server.Port)
	}
	if cfg.Session.IPCooldown != 5 || cfg.Session.MaxMessages != 3 || cfg.Session.Timeout != 120 {
		t.Fatalf("unexpected session config: %+v", cfg.Session)
	}
	if cfg.Prompts.System != "custom prompt" || cfg.Admin.Username != "root" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	// Untouched keys keep their defaults.
	if cfg.Database.Path != "data/chatgate.db" {
		t.Fatalf("unexpected database path: %s", cfg.Database.Path)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("HTTP_PORT", "9999")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-from-env" {
		t.Fatalf("expected env api key, got %q", cfg.OpenAI.APIKey)
	}
	if cfg.Server.Port != 9999 {
		t.Fatalf("expected env port, got %d", cfg.Server.Port)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}
