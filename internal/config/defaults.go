package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"

	// Output defaults
	DefaultOutputFormat = FormatText

	// History defaults
	DefaultHistoryEnabled = true
	DefaultHistoryTTL     = 30 * 24 * time.Hour
	DefaultHistoryLimit   = 20

	// EnvPrefix is the prefix for environment overrides (TIAPP_*)
	EnvPrefix = "TIAPP"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tiapp"
	}
	return filepath.Join(home, ".tiapp")
}

// HistoryDir returns the history store directory path
func HistoryDir() string {
	return filepath.Join(ConfigDir(), "history")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Manifest: ManifestConfig{},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
		},
		History: HistoryConfig{
			Enabled:   DefaultHistoryEnabled,
			Directory: HistoryDir(),
			TTL:       DefaultHistoryTTL,
			Limit:     DefaultHistoryLimit,
		},
	}
}
