// Package config handles configuration for posechat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	apierrors "github.com/diogo/posechat/internal/errors"
)

// Config represents the user configuration of the chat client
type Config struct {
	// ServerURL is the base URL of the recommendation server.
	ServerURL string `json:"server_url"`
	// RequestTimeout is the per-request timeout in seconds. Zero waits forever.
	RequestTimeout int `json:"request_timeout"`
	// Sanitize strips unsafe markup from messages before they are rendered.
	// Off by default: the server is trusted to return ready-to-render markup.
	Sanitize        bool   `json:"sanitize"`
	Theme           string `json:"theme,omitempty"` // glamour style: dark, light, notty
	LogLevel        string `json:"log_level,omitempty"`
	LogFormat       string `json:"log_format,omitempty"` // json or text
	LogFile         string `json:"log_file,omitempty"`
	CopyToClipboard bool   `json:"copy_to_clipboard"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		ServerURL:       "http://127.0.0.1:5000",
		RequestTimeout:  0,
		Sanitize:        false,
		Theme:           "dark",
		LogLevel:        "info",
		LogFormat:       "json",
		CopyToClipboard: false,
	}
}

// Timeout returns RequestTimeout as a duration
func (c Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".posechat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

var setters = map[string]func(*Config, string) error{
	"server_url": func(c *Config, v string) error {
		v = strings.TrimRight(strings.TrimSpace(v), "/")
		if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
			return apierrors.NewConfigError("server_url", "must start with http:// or https://")
		}
		c.ServerURL = v
		return nil
	},
	"request_timeout": func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return apierrors.NewConfigError("request_timeout", "must be a whole number of seconds")
		}
		if n < 0 {
			return apierrors.NewConfigError("request_timeout", "must not be negative")
		}
		c.RequestTimeout = n
		return nil
	},
	"sanitize":          boolSetter("sanitize", func(c *Config, b bool) { c.Sanitize = b }),
	"copy_to_clipboard": boolSetter("copy_to_clipboard", func(c *Config, b bool) { c.CopyToClipboard = b }),
	"theme": func(c *Config, v string) error {
		c.Theme = strings.TrimSpace(v)
		return nil
	},
	"log_level": func(c *Config, v string) error {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "debug", "info", "warn", "warning", "error":
			c.LogLevel = strings.ToLower(strings.TrimSpace(v))
			return nil
		}
		return apierrors.NewConfigError("log_level", fmt.Sprintf("unknown level %q", v))
	},
	"log_format": func(c *Config, v string) error {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "json", "text":
			c.LogFormat = strings.ToLower(strings.TrimSpace(v))
			return nil
		}
		return apierrors.NewConfigError("log_format", "must be json or text")
	},
	"log_file": func(c *Config, v string) error {
		c.LogFile = strings.TrimSpace(v)
		return nil
	},
}

func boolSetter(key string, apply func(*Config, bool)) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return apierrors.NewConfigError(key, "must be true or false")
		}
		apply(c, b)
		return nil
	}
}

// Set updates a single key of cfg from its string form
func (c *Config) Set(key, value string) error {
	setter, ok := setters[key]
	if !ok {
		return apierrors.NewConfigError(key, "unknown key")
	}
	return setter(c, value)
}

// Keys returns the settable configuration keys in sorted order
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
