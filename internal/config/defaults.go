package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultModel          = "translategemma:4b"
	defaultBaseURL        = "http://localhost:11434"
	defaultBatchSize      = 50
	defaultKeepAlive      = "10m"
	defaultTimeoutSeconds = 120
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Ollama: Ollama{
			Model:          defaultModel,
			BaseURL:        defaultBaseURL,
			BatchSize:      defaultBatchSize,
			KeepAlive:      defaultKeepAlive,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Cache: Cache{
			Enabled: true,
			Dir:     defaultCacheDir(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "subtrans")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/subtrans"
	}
	return filepath.Join(home, ".cache", "subtrans")
}
