package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"gamebot/internal/config"
)

func TestLoadDefaultConfigUsesEnvCredentialsAndExpandsPaths(t *testing.T) {
	t.Setenv("STEAM_API_KEY", "test-key")
	t.Setenv("STEAM_USER_ID", "76561198000000000")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantCache := filepath.Join(tempHome, ".cache", "gamebot", "games_cache.json")
	if cfg.Cache.Path != wantCache {
		t.Fatalf("unexpected cache path: got %q want %q", cfg.Cache.Path, wantCache)
	}
	if cfg.Steam.APIKey != "test-key" {
		t.Fatalf("expected Steam key from env, got %q", cfg.Steam.APIKey)
	}
	if cfg.Steam.SteamID != "76561198000000000" {
		t.Fatalf("expected SteamID from env, got %q", cfg.Steam.SteamID)
	}
	if cfg.Steam.APIBaseURL != config.Default().Steam.APIBaseURL {
		t.Fatalf("unexpected api base url: %q", cfg.Steam.APIBaseURL)
	}
	if cfg.Cache.RefreshIntervalHours != 24 {
		t.Fatalf("unexpected refresh interval: %d", cfg.Cache.RefreshIntervalHours)
	}
	if cfg.Cache.MaxConcurrentFetches != 4 {
		t.Fatalf("unexpected fetch concurrency: %d", cfg.Cache.MaxConcurrentFetches)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(filepath.Dir(cfg.Cache.Path))
	if err != nil {
		t.Fatalf("expected cache directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %q to be a directory", filepath.Dir(cfg.Cache.Path))
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "gamebot.toml")

	type payload struct {
		Steam struct {
			APIKey       string `toml:"api_key"`
			SteamID      string `toml:"steam_id"`
			StoreBaseURL string `toml:"store_base_url"`
		} `toml:"steam"`
		Cache struct {
			RefreshIntervalHours int `toml:"refresh_interval_hours"`
		} `toml:"cache"`
	}
	custom := payload{}
	custom.Steam.APIKey = "abc123"
	custom.Steam.SteamID = "76561198000000001"
	custom.Steam.StoreBaseURL = "https://example.com/store"
	custom.Cache.RefreshIntervalHours = 6
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Steam.APIKey != "abc123" {
		t.Fatalf("expected Steam key from file, got %q", cfg.Steam.APIKey)
	}
	if cfg.Steam.StoreBaseURL != "https://example.com/store" {
		t.Fatalf("expected store base url override, got %q", cfg.Steam.StoreBaseURL)
	}
	if cfg.Cache.RefreshIntervalHours != 6 {
		t.Fatalf("expected refresh interval 6, got %d", cfg.Cache.RefreshIntervalHours)
	}
}

func TestEnvVarSuppliesAPIKeyWhenFileOmitsIt(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "gamebot.toml")

	type payload struct {
		Steam struct {
			APIKey  string `toml:"api_key"`
			SteamID string `toml:"steam_id"`
		} `toml:"steam"`
	}
	custom := payload{}
	custom.Steam.APIKey = ""
	custom.Steam.SteamID = "76561198000000002"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	t.Setenv("STEAM_API_KEY", "env-key")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Steam.APIKey != "env-key" {
		t.Errorf("expected Steam key from env, got %q", cfg.Steam.APIKey)
	}
}

func TestLoadRejectsMissingCredentials(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("STEAM_API_KEY", "")
	t.Setenv("STEAM_USER_ID", "")

	if _, _, _, err := config.Load(""); err == nil {
		t.Fatal("expected error when credentials missing")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "your_steam_api_key_here") {
		t.Fatalf("sample config missing placeholder Steam key: %s", contents)
	}

	// Validate it decodes
	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Cache.Path, "gamebot") {
		t.Fatalf("expected cache path to contain gamebot, got %q", cfg.Cache.Path)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Steam.APIKey = "key"
	cfg.Steam.SteamID = "1"
	cfg.Cache.RefreshIntervalHours = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative refresh interval")
	}

	cfg = config.Default()
	cfg.Steam.APIKey = "key"
	cfg.Steam.SteamID = "1"
	cfg.Cache.MaxConcurrentFetches = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero fetch concurrency")
	}

	cfg = config.Default()
	cfg.Steam.APIKey = "key"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when steam_id missing")
	}
}
