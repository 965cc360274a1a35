package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigWithRoot(t *testing.T) {
	cfg := DefaultConfigWithRoot("/tmp/soko")

	if cfg.DataCacheDir != filepath.Join("/tmp/soko", "data", "cache") {
		t.Fatalf("unexpected cache dir %s", cfg.DataCacheDir)
	}
	if cfg.LLMProvider != "deepseek" {
		t.Fatalf("unexpected provider %s", cfg.LLMProvider)
	}
	if cfg.PerplexityBaseURL != "https://api.perplexity.ai" {
		t.Fatalf("unexpected perplexity url %s", cfg.PerplexityBaseURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("PERPLEXITY_API_KEY", "pplx-test")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL_MINUTES", "30")
	t.Setenv("EINO_DEBUG_PORT", "60000")

	cfg := DefaultConfigWithRoot(t.TempDir())
	cfg.loadFromEnv()

	if cfg.LLMProvider != "openai" {
		t.Errorf("provider override not applied: %s", cfg.LLMProvider)
	}
	if cfg.PerplexityAPIKey != "pplx-test" {
		t.Errorf("api key override not applied")
	}
	if cfg.CacheEnabled {
		t.Errorf("cache override not applied")
	}
	if cfg.CacheTTLMinutes != 30 {
		t.Errorf("ttl override not applied: %d", cfg.CacheTTLMinutes)
	}
	if cfg.EinoDebugPort != 60000 {
		t.Errorf("debug port override not applied: %d", cfg.EinoDebugPort)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfigWithRoot(t.TempDir())
	cfg.LLMProvider = "gemini"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported provider")
	}

	cfg = DefaultConfigWithRoot(t.TempDir())
	cfg.EinoDebugPort = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero debug port")
	}

	cfg = DefaultConfigWithRoot(t.TempDir())
	cfg.CacheTTLMinutes = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative ttl")
	}
}

func TestManagerCreatesAndUpdates(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	path := filepath.Join(dir, "config.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	cfg := mgr.Get()
	cfg.ProjectDir = filepath.Join(dir, "project")
	cfg.PerplexityModel = "sonar-reasoning-pro"

	data, _ := json.Marshal(cfg)
	if err := mgr.UpdateFromJSON(string(data)); err != nil {
		t.Fatalf("UpdateFromJSON: %v", err)
	}

	updated := mgr.Get()
	if updated.ProjectDir != cfg.ProjectDir {
		t.Fatalf("expected project dir %s, got %s", cfg.ProjectDir, updated.ProjectDir)
	}
	if updated.PerplexityModel != "sonar-reasoning-pro" {
		t.Fatalf("expected updated model, got %s", updated.PerplexityModel)
	}
}

func TestManagerUpdateRejectsInvalid(t *testing.T) {
	mgr, err := NewManager(WithConfigDir(t.TempDir()))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	cfg := mgr.Get()
	cfg.LLMProvider = "nonsense"
	if err := mgr.Update(cfg); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestManagerWatchReloads(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan struct{}, 1)
	if err := mgr.Watch(ctx, func(cfg Config) {
		reloaded <- struct{}{}
	}); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	cfg := mgr.Get()
	cfg.ProjectDir = filepath.Join(dir, "changed")

	if err := writeConfigFile(mgr.Path(), cfg); err != nil {
		t.Fatalf("writeConfigFile: %v", err)
	}

	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatalf("watcher did not fire on config change")
	}
}
