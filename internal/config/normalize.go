package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.Ollama.Model = strings.TrimSpace(c.Ollama.Model)
	c.Ollama.BaseURL = strings.TrimRight(strings.TrimSpace(c.Ollama.BaseURL), "/")
	c.Ollama.KeepAlive = strings.TrimSpace(c.Ollama.KeepAlive)
	if c.Ollama.Model == "" {
		c.Ollama.Model = defaultModel
	}
	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = defaultBaseURL
	}
	if c.Ollama.BatchSize == 0 {
		c.Ollama.BatchSize = defaultBatchSize
	}
	if c.Ollama.KeepAlive == "" {
		c.Ollama.KeepAlive = defaultKeepAlive
	}
	if c.Ollama.TimeoutSeconds == 0 {
		c.Ollama.TimeoutSeconds = defaultTimeoutSeconds
	}

	var err error
	if c.Output.Directory != "" {
		if c.Output.Directory, err = expandPath(c.Output.Directory); err != nil {
			return fmt.Errorf("output.directory: %w", err)
		}
	}
	if c.Cache.Dir != "" {
		if c.Cache.Dir, err = expandPath(c.Cache.Dir); err != nil {
			return fmt.Errorf("cache.dir: %w", err)
		}
	}

	if c.Logging.File != "" {
		if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
