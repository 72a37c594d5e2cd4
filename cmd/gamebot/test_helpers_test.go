package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gamebot/internal/catalog"
	"gamebot/internal/logging"
)

type cliTestEnv struct {
	configPath string
	cachePath  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("STEAM_API_KEY", "")
	t.Setenv("STEAM_USER_ID", "")

	cachePath := filepath.Join(base, "cache", "games_cache.json")
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(
		"[steam]\napi_key = %q\nsteam_id = %q\n\n[cache]\npath = %q\n",
		"TESTKEY", "76561190000000000", cachePath,
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{configPath: configPath, cachePath: cachePath}
}

// seedCache writes entries straight through the catalog store so commands
// that read the cache have something to show.
func (env *cliTestEnv) seedCache(t *testing.T, entries ...catalog.Entry) {
	t.Helper()
	store := catalog.NewStore(env.cachePath, logging.NewNop())
	cache := catalog.NewCache()
	for _, entry := range entries {
		cache.Games[entry.AppID] = entry
	}
	cache.GeneratedAt = time.Now().UTC()
	if err := store.Save(cache); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = []string{"--config", configPath}
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
