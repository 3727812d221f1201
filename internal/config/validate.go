package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
)

var keepAlivePattern = regexp.MustCompile(`^(-1|0|\d+(s|m|h))$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOllama(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOllama() error {
	if c.Ollama.Model == "" {
		return errors.New("ollama.model must be set")
	}
	if c.Ollama.BatchSize < 1 {
		return errors.New("ollama.batch_size must be at least 1")
	}
	if c.Ollama.TimeoutSeconds < 1 {
		return errors.New("ollama.timeout_seconds must be at least 1")
	}
	parsed, err := url.Parse(c.Ollama.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("ollama.base_url %q is not a valid URL", c.Ollama.BaseURL)
	}
	if !keepAlivePattern.MatchString(c.Ollama.KeepAlive) {
		return fmt.Errorf("ollama.keep_alive %q must be a duration like \"10m\" or \"-1\"", c.Ollama.KeepAlive)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Enabled && c.Cache.Dir == "" {
		return errors.New("cache.dir must be set when cache.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}
