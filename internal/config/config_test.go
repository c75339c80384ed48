package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBase == "" {
		t.Error("APIBase not defaulted")
	}
	if cfg.ConfigDir == "" {
		t.Error("ConfigDir not defaulted")
	}
	if cfg.Storage != "sqlite" {
		t.Errorf("Storage = %q, want sqlite", cfg.Storage)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DAYRING_API_BASE", "https://api.example.com/")
	t.Setenv("DAYRING_CONFIG_DIR", "/tmp/dayring-test")
	t.Setenv("DAYRING_STORAGE", "json")
	t.Setenv("DAYRING_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBase != "https://api.example.com" {
		t.Errorf("APIBase = %q (trailing slash should be trimmed)", cfg.APIBase)
	}
	if cfg.ConfigDir != "/tmp/dayring-test" {
		t.Errorf("ConfigDir = %q", cfg.ConfigDir)
	}
	if !cfg.Debug {
		t.Error("Debug not set")
	}
	if cfg.StorePath() != filepath.Join("/tmp/dayring-test", "dayring.json") {
		t.Errorf("StorePath = %q", cfg.StorePath())
	}
}

func TestStorePath_SQLiteDefault(t *testing.T) {
	cfg := &Config{ConfigDir: "/tmp/x", Storage: "sqlite"}
	if cfg.StorePath() != filepath.Join("/tmp/x", "dayring.db") {
		t.Errorf("StorePath = %q", cfg.StorePath())
	}
}
