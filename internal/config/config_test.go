package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TODO_API_URL", "")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("TODO_REQUEST_TIMEOUT", "")
	t.Setenv("MOCK_PASETO_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != DefaultAPIURL {
		t.Fatalf("expected default base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 0 {
		t.Fatalf("expected no timeout by default, got %v", cfg.API.RequestTimeout)
	}
	if cfg.Session.Store != StoreFile {
		t.Fatalf("expected file store, got %q", cfg.Session.Store)
	}
	if !strings.HasSuffix(cfg.Session.FilePath, "session") {
		t.Fatalf("unexpected session file %q", cfg.Session.FilePath)
	}
	if cfg.Mock.TokenDuration != 30*time.Minute {
		t.Fatalf("unexpected token duration %v", cfg.Mock.TokenDuration)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TODO_API_URL", "https://api.example.com/")
	t.Setenv("TODO_REQUEST_TIMEOUT", "5")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("TRUSTED_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 5*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.API.RequestTimeout)
	}
	if cfg.Session.Store != StoreRedis {
		t.Fatalf("unexpected store %q", cfg.Session.Store)
	}
	if cfg.Redis.Address() != "localhost:6380" {
		t.Fatalf("unexpected redis address %q", cfg.Redis.Address())
	}
	if len(cfg.Mock.TrustedOrigins) != 2 || cfg.Mock.TrustedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.Mock.TrustedOrigins)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("SESSION_STORE", "keychain")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown session store")
	}

	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("MOCK_PASETO_KEY", "too-short")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for short paseto key")
	}
}
