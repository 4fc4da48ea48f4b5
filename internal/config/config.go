// ABOUTME: Configuration loading and parsing for the rag-console client
// ABOUTME: Supports YAML files with environment variable expansion and defaults

package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config represents the complete rag-console configuration
type Config struct {
	Backend Backend `yaml:"backend"`
	Upload  Upload  `yaml:"upload"`
	Chat    Chat    `yaml:"chat"`
	Logging Logging `yaml:"logging"`
}

// Backend holds the backend address configuration
type Backend struct {
	// URL is the backend root address
	URL string `yaml:"url"`
}

// Upload holds ingestion defaults
type Upload struct {
	// Vendor labels uploaded documents when the user gives none
	Vendor string `yaml:"vendor"`
}

// Chat holds conversational defaults
type Chat struct {
	// TopK is the retrieval depth sent with every mode call
	TopK int `yaml:"top_k"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Backend: Backend{URL: "http://localhost:8000"},
		Upload:  Upload{Vendor: "Uploaded"},
		Chat:    Chat{TopK: 5},
		Logging: Logging{Level: "info", Format: "text"},
	}
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded.
// Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables become empty strings.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and
// valid. Returns an error describing the first validation failure.
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("backend.url is required")
	}
	parsed, err := url.Parse(c.Backend.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("backend.url %q is not a valid URL", c.Backend.URL)
	}

	if c.Chat.TopK <= 0 {
		return fmt.Errorf("chat.top_k must be positive")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	return nil
}
