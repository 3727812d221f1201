package logging_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subtrans/internal/config"
	"subtrans/internal/logging"
)

func TestNewConsoleWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("translation started", "segments", 42, "model", "translategemma:4b")
	logger.Debug("hidden at info level")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "INFO") || !strings.Contains(text, "translation started") {
		t.Fatalf("unexpected log line: %q", text)
	}
	if !strings.Contains(text, "segments=42") || !strings.Contains(text, "model=translategemma:4b") {
		t.Fatalf("expected flattened attrs, got %q", text)
	}
	if strings.Contains(text, "hidden at info level") {
		t.Fatalf("debug line leaked at info level: %q", text)
	}
}

func TestNewConsoleGroupsAndQuoting(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.WithGroup("job").With("id", "abc").Info("done", "file", "my movie.srt")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "job.id=abc") {
		t.Fatalf("expected group-prefixed key, got %q", text)
	}
	if !strings.Contains(text, `job.file="my movie.srt"`) {
		t.Fatalf("expected quoted value with spaces, got %q", text)
	}
}

func TestNewJSONFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "log.json")
	logger, err := logging.New(logging.Options{
		Format:      "json",
		Level:       "warn",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("batch failed", "segments", 3)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one record, got %d: %q", len(lines), content)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record["level"] != "warn" || record["msg"] != "batch failed" {
		t.Fatalf("unexpected record %v", record)
	}
	if record["segments"] != float64(3) {
		t.Fatalf("expected segments attr, got %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("expected ts key")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewFromConfigWritesConfiguredFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "subtrans.log")
	cfg := config.Default()
	cfg.Logging.File = logPath

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("translation started", "segments", 2)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "translation started") {
		t.Fatalf("expected log line in configured file, got %q", content)
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger instance")
	}
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("expected info enabled by default")
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug disabled by default")
	}
}
