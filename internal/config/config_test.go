package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
catalog:
  path: "data/catalog.yaml"
database:
  path: "data/oncoplan.db"
ai:
  api_key: "test-key-123"
log:
  level: "debug"
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

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Catalog.Path != "data/catalog.yaml" {
		t.Errorf("catalog.path = %q, want %q", cfg.Catalog.Path, "data/catalog.yaml")
	}
	if cfg.Database.Path != "data/oncoplan.db" {
		t.Errorf("database.path = %q, want %q", cfg.Database.Path, "data/oncoplan.db")
	}
	if cfg.AI.APIKey != "test-key-123" {
		t.Errorf("ai.api_key = %q, want %q", cfg.AI.APIKey, "test-key-123")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
}

// TestLoadEmptyPathUsesDefaults verifies the CLI can run with no config file at all.
func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Catalog.Path != "catalog.yaml" {
		t.Errorf("catalog.path = %q, want default", cfg.Catalog.Path)
	}
	if cfg.Database.Path != "oncoplan.db" {
		t.Errorf("database.path = %q, want default", cfg.Database.Path)
	}
}

// TestEnvOverride verifies that ONCOPLAN_ env vars take precedence over YAML values.
// This ensures production deployments can override config via environment.
func TestEnvOverride(t *testing.T) {
	t.Setenv("ONCOPLAN_DB_PATH", "/var/lib/oncoplan/override.db")
	t.Setenv("ONCOPLAN_AI_API_KEY", "env-key")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Path != "/var/lib/oncoplan/override.db" {
		t.Errorf("database.path = %q, want override", cfg.Database.Path)
	}
	if cfg.AI.APIKey != "env-key" {
		t.Errorf("ai.api_key = %q, want %q", cfg.AI.APIKey, "env-key")
	}
	// Unchanged fields should keep YAML values
	if cfg.Catalog.Path != "data/catalog.yaml" {
		t.Errorf("catalog.path = %q, want YAML value", cfg.Catalog.Path)
	}
}

// TestValidationBadLogLevel verifies that an unknown log level is rejected
// rather than silently mapped to info.
func TestValidationBadLogLevel(t *testing.T) {
	yaml := `
log:
  level: "verbose"
`
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for bad log level")
	}
}

// TestValidationMissingCatalog verifies that blanking the catalog path fails validation.
func TestValidationMissingCatalog(t *testing.T) {
	t.Setenv("ONCOPLAN_CATALOG_PATH", "")
	yaml := `
catalog:
  path: ""
database:
  path: "oncoplan.db"
`
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for missing catalog path")
	}
}

// TestSlogLevel verifies the level names map onto slog levels.
func TestSlogLevel(t *testing.T) {
	cases := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := (LogConfig{Level: tc.name}).SlogLevel(); got != tc.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// TestLoadMissingFile verifies that a missing config file returns a clear error.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
