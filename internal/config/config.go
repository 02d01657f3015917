// Package config loads the calculator configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fjl/gio-scicalc/internal/assist"
	"gopkg.in/yaml.v3"
)

// APIKeyEnv overrides the assistant API key from the environment.
const APIKeyEnv = "GEMINI_API_KEY"

// Config is the application configuration.
type Config struct {
	// DataDir holds the settings database. Empty means the platform default.
	DataDir   string    `yaml:"data_dir"`
	Assistant Assistant `yaml:"assistant"`
}

// Assistant configures the language model client.
type Assistant struct {
	APIURL     string        `yaml:"api_url"`
	APIKey     string        `yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Assistant: Assistant{
			APIURL:     assist.DefaultURL,
			Timeout:    assist.DefaultTimeout,
			MaxRetries: assist.DefaultMaxRetries,
			RetryDelay: assist.DefaultRetryDelay,
		},
	}
}

// Load reads the configuration file at path on top of the defaults.
// An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := cfg.decode(data); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", path, err)
		}
	}
	if key := os.Getenv(APIKeyEnv); key != "" {
		cfg.Assistant.APIKey = key
	}
	return cfg, cfg.validate()
}

func (cfg *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (cfg *Config) validate() error {
	a := cfg.Assistant
	switch {
	case a.APIURL == "":
		return errors.New("assistant.api_url is empty")
	case a.MaxRetries < 0:
		return fmt.Errorf("assistant.max_retries is negative: %d", a.MaxRetries)
	case a.Timeout < 0 || a.RetryDelay < 0:
		return errors.New("assistant durations must not be negative")
	}
	return nil
}

// Client creates the assistant client described by the configuration.
func (cfg *Config) Client() *assist.Client {
	a := cfg.Assistant
	c := assist.NewClient(a.APIURL, a.APIKey)
	c.MaxRetries = a.MaxRetries
	c.RetryDelay = a.RetryDelay
	if a.Timeout > 0 {
		c.HTTP.Timeout = a.Timeout
	}
	return c
}
