package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subtrans/internal/config"
)

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CACHE_HOME", "")

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
	if cfg.Ollama.Model != "translategemma:4b" {
		t.Fatalf("unexpected default model: %q", cfg.Ollama.Model)
	}
	if cfg.Ollama.BaseURL != "http://localhost:11434" {
		t.Fatalf("unexpected default base url: %q", cfg.Ollama.BaseURL)
	}
	if cfg.Ollama.BatchSize != 50 {
		t.Fatalf("unexpected default batch size: %d", cfg.Ollama.BatchSize)
	}
	if cfg.Ollama.KeepAlive != "10m" {
		t.Fatalf("unexpected default keep_alive: %q", cfg.Ollama.KeepAlive)
	}
	if !cfg.Cache.Enabled {
		t.Fatal("expected cache enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadExplicitFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[ollama]
model = "llama3:8b"
batch_size = 25
keep_alive = "1h"

[output]
directory = "` + dir + `/out"

[cache]
enabled = false

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit path resolved, got %q exists=%v", resolved, exists)
	}
	if cfg.Ollama.Model != "llama3:8b" || cfg.Ollama.BatchSize != 25 || cfg.Ollama.KeepAlive != "1h" {
		t.Fatalf("unexpected ollama settings: %+v", cfg.Ollama)
	}
	// Unset fields keep their defaults.
	if cfg.Ollama.BaseURL != "http://localhost:11434" {
		t.Fatalf("expected default base url retained, got %q", cfg.Ollama.BaseURL)
	}
	if cfg.Output.Directory != filepath.Join(dir, "out") {
		t.Fatalf("unexpected output directory: %q", cfg.Output.Directory)
	}
	if cfg.Cache.Enabled {
		t.Fatal("expected cache disabled")
	}
	// Format and level are lowercased during normalization.
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging settings: %+v", cfg.Logging)
	}
}

func TestLoadExpandsTildePaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[output]
directory = "~/translated"

[cache]
dir = "~/.cache/subtrans"

[logging]
file = "~/.local/state/subtrans/subtrans.log"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Output.Directory != filepath.Join(tempHome, "translated") {
		t.Fatalf("tilde not expanded: %q", cfg.Output.Directory)
	}
	if cfg.Cache.Dir != filepath.Join(tempHome, ".cache", "subtrans") {
		t.Fatalf("tilde not expanded: %q", cfg.Cache.Dir)
	}
	if cfg.Logging.File != filepath.Join(tempHome, ".local", "state", "subtrans", "subtrans.log") {
		t.Fatalf("tilde not expanded: %q", cfg.Logging.File)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"zero batch size", func(c *config.Config) { c.Ollama.BatchSize = -1 }, "batch_size"},
		{"bad base url", func(c *config.Config) { c.Ollama.BaseURL = "not a url" }, "base_url"},
		{"bad keep alive", func(c *config.Config) { c.Ollama.KeepAlive = "soon" }, "keep_alive"},
		{"bad format", func(c *config.Config) { c.Logging.Format = "yaml" }, "logging.format"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"cache without dir", func(c *config.Config) { c.Cache.Enabled = true; c.Cache.Dir = "" }, "cache.dir"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[ollama]") {
		t.Fatal("sample missing [ollama] section")
	}
}
