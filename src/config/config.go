// config.go - YAML plus environment configuration for the chat client.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = "config.yaml"

// Config is the explicit application configuration handed to the controller
// and UI at construction. There is no global config state.
type Config struct {
	APIKey                string `yaml:"apiKey"`
	APIURL                string `yaml:"apiUrl"`
	RequestTimeoutSeconds int    `yaml:"requestTimeoutSeconds"`
	DataDir               string `yaml:"dataDir"`
	LogLevel              string `yaml:"logLevel"`
	RetentionDays         int    `yaml:"retentionDays"`
}

// Load reads the YAML file at path (a missing file is fine, defaults apply)
// and then applies environment overrides. The API key must come from one of
// the two.
func Load(path string) (Config, error) {
	cfg := Config{
		RequestTimeoutSeconds: 30,
		LogLevel:              "info",
		RetentionDays:         30,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.DataDir = filepath.Join(home, ".urdugpt")
	} else {
		cfg.DataDir = ".urdugpt"
	}

	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	// Override with environment variables
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("URDUGPT_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("URDUGPT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("URDUGPT_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeoutSeconds = n
		}
	}
	if v := os.Getenv("URDUGPT_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RetentionDays = n
		}
	}

	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	if cfg.APIKey == "" {
		return errors.New("config: apiKey is required (set in config.yaml or GEMINI_API_KEY)")
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		return errors.New("config: requestTimeoutSeconds must be positive")
	}
	if cfg.RetentionDays <= 0 {
		return errors.New("config: retentionDays must be positive")
	}
	return nil
}

// Timeout returns the remote request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// HistoryPath returns the bbolt file under the data directory.
func (c Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "chat.db")
}
