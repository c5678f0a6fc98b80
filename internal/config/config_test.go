package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
  api_key: "test-key-123"
storage:
  data_dir: "data"
sync:
  github_owner: "alice"
  github_repo: "workouts"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields
// populated and defaults applied.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.APIKey != "test-key-123" {
		t.Errorf("server.api_key = %q, want %q", cfg.Server.APIKey, "test-key-123")
	}
	if cfg.Storage.DataDir != "data" {
		t.Errorf("storage.data_dir = %q, want %q", cfg.Storage.DataDir, "data")
	}
	if cfg.Storage.MigrationsDir != "migrations" {
		t.Errorf("storage.migrations_dir = %q, want default %q", cfg.Storage.MigrationsDir, "migrations")
	}
	if cfg.Sync.GitHubOwner != "alice" {
		t.Errorf("sync.github_owner = %q, want %q", cfg.Sync.GitHubOwner, "alice")
	}
	if cfg.Tailscale.Hostname != "progresspath" {
		t.Errorf("tailscale.hostname = %q, want default %q", cfg.Tailscale.Hostname, "progresspath")
	}
}

// TestEnvOverride verifies that PROGRESSPATH_ env vars take precedence over
// YAML values so deployments can configure via environment.
func TestEnvOverride(t *testing.T) {
	t.Setenv("PROGRESSPATH_SERVER_PORT", "9999")
	t.Setenv("PROGRESSPATH_API_KEY", "env-key")
	t.Setenv("PROGRESSPATH_DATA_DIR", "/var/lib/progresspath")
	t.Setenv("PROGRESSPATH_GITHUB_TOKEN", "env-token")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Server.APIKey != "env-key" {
		t.Errorf("server.api_key = %q, want %q", cfg.Server.APIKey, "env-key")
	}
	if cfg.Storage.DataDir != "/var/lib/progresspath" {
		t.Errorf("storage.data_dir = %q, want override", cfg.Storage.DataDir)
	}
	if cfg.Sync.GitHubToken != "env-token" {
		t.Errorf("sync.github_token = %q, want %q", cfg.Sync.GitHubToken, "env-token")
	}
	// Unchanged fields keep YAML values.
	if cfg.Sync.GitHubOwner != "alice" {
		t.Errorf("sync.github_owner = %q, want %q", cfg.Sync.GitHubOwner, "alice")
	}
}

// TestValidationMissingPort verifies that a missing port is rejected when
// Tailscale is disabled.
func TestValidationMissingPort(t *testing.T) {
	yaml := `
server:
  api_key: "key"
storage:
  data_dir: "data"
`
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for missing port")
	}
}

// TestValidationTailscaleNoPort verifies that the port becomes optional when
// the Tailscale listener is enabled, but the state dir becomes required.
func TestValidationTailscaleNoPort(t *testing.T) {
	yaml := `
server:
  api_key: "key"
storage:
  data_dir: "data"
tailscale:
  enabled: true
  state_dir: "tsnet-state"
`
	if _, err := Load(writeTemp(t, yaml)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noState := `
server:
  api_key: "key"
storage:
  data_dir: "data"
tailscale:
  enabled: true
`
	if _, err := Load(writeTemp(t, noState)); err == nil {
		t.Fatal("expected validation error for missing tailscale state_dir")
	}
}

// TestValidationMissingAPIKey verifies that a missing API key is rejected.
// Without it, all mutation endpoints would be unprotected.
func TestValidationMissingAPIKey(t *testing.T) {
	yaml := `
server:
  port: 8080
storage:
  data_dir: "data"
`
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for missing api_key")
	}
}

// TestValidationMissingDataDir verifies that a missing data dir is rejected.
func TestValidationMissingDataDir(t *testing.T) {
	yaml := `
server:
  port: 8080
  api_key: "key"
`
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for missing data_dir")
	}
}

// TestLoadMissingFile verifies that a missing config file returns a clear error.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
