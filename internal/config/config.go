// Package config provides configuration for chatgate.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the chatgate configuration. It is built once at startup
// and passed to every component that needs it; nothing reads it ambiently.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	OpenAI struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"`
		Model   string `yaml:"model"`
	} `yaml:"openai"`

	Session struct {
		// IPCooldown is the minimum number of seconds an IP must wait
		// between creating sessions.
		IPCooldown float64 `yaml:"ip_cooldown"`
		// MaxMessages is the number of chat turns allowed per session.
		MaxMessages int `yaml:"max_messages"`
		// Timeout is the session lifetime in seconds from creation.
		Timeout float64 `yaml:"timeout"`
		// MaxContextChars bounds the history sent upstream, measured in
		// content characters.
		MaxContextChars int `yaml:"max_context_chars"`
	} `yaml:"session"`

	Prompts struct {
		System string `yaml:"system"`
	} `yaml:"prompts"`

	Admin struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
}

// Default returns a configuration populated with defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Database.Path = "data/chatgate.db"
	cfg.OpenAI.BaseURL = "https://api.openai.com"
	cfg.OpenAI.Model = "gpt-4o-mini"
	cfg.Session.IPCooldown = 60
	cfg.Session.MaxMessages = 20
	cfg.Session.Timeout = 3600
	cfg.Session.MaxContextChars = 4096
	cfg.Prompts.System = "You are a helpful assistant."
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "admin"
	return cfg
}

// Load reads configuration from the YAML file at path, then applies
// environment overrides. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Environment overrides
	cfg.OpenAI.APIKey = getEnv("OPENAI_API_KEY", cfg.OpenAI.APIKey)
	cfg.Server.Port = getEnvInt("HTTP_PORT", cfg.Server.Port)

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
