package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":3000" {
		t.Errorf("unexpected HTTP addr: %q", cfg.HTTP.Addr)
	}
	if cfg.API.BaseURL != "http://localhost:8080/api" {
		t.Errorf("unexpected API base URL: %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("unexpected API timeout: %v", cfg.API.Timeout)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("unexpected session TTL: %v", cfg.Session.TTL)
	}
	if cfg.Redis.URI != "localhost:6379" {
		t.Errorf("unexpected redis URI: %q", cfg.Redis.URI)
	}
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DIRECTORY_API_BASE_URL", "https://api.example.com/api/")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("SESSION_TTL", "90m")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.BaseURL != "https://api.example.com/api" {
		t.Errorf("trailing slash should be trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.HTTP.Addr != ":9000" {
		t.Errorf("unexpected HTTP addr: %q", cfg.HTTP.Addr)
	}
	if cfg.Session.TTL != 90*time.Minute {
		t.Errorf("unexpected session TTL: %v", cfg.Session.TTL)
	}
}

func TestSanitize_Guardrails(t *testing.T) {
	cfg := AppConfig{
		HTTP:    HTTPConfig{CompressionLevel: 42},
		API:     APIConfig{BaseURL: "  http://x/api/ ", Timeout: -time.Second},
		Session: SessionConfig{TTL: 0},
	}
	cfg.Sanitize()

	if cfg.HTTP.CompressionLevel != 9 {
		t.Errorf("compression level should clamp to 9, got %d", cfg.HTTP.CompressionLevel)
	}
	if cfg.API.BaseURL != "http://x/api" {
		t.Errorf("unexpected API base URL: %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("unexpected API timeout: %v", cfg.API.Timeout)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("unexpected session TTL: %v", cfg.Session.TTL)
	}
	if cfg.Session.KeyPrefix != "session:" {
		t.Errorf("unexpected key prefix: %q", cfg.Session.KeyPrefix)
	}
}

func TestDetectDevMode_NodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("NODE_ENV=development should enable dev mode")
	}
}
