package config

import (
	"fmt"
	"strings"
	"time"
)

// Output formats understood by the tiapp command
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config represents the application configuration
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Manifest ManifestConfig `mapstructure:"manifest" yaml:"manifest"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	History  HistoryConfig  `mapstructure:"history" yaml:"history"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ManifestConfig contains manifest discovery settings.
// File is kept untyped so that a non-string value in a config file is
// reported by the manifest loader instead of being coerced.
type ManifestConfig struct {
	File     any    `mapstructure:"file" yaml:"file"`
	StartDir string `mapstructure:"start_dir" yaml:"start_dir"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// HistoryConfig contains settings for the recently loaded manifests store
type HistoryConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Limit     int           `mapstructure:"limit" yaml:"limit"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}

	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	switch c.Output.Format {
	case "":
		c.Output.Format = DefaultOutputFormat
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("invalid output.format %q: must be one of text, json, yaml", c.Output.Format)
	}

	if c.History.TTL < time.Minute {
		c.History.TTL = DefaultHistoryTTL
	}
	if c.History.Limit < 1 {
		c.History.Limit = DefaultHistoryLimit
	}
	if c.History.Directory == "" {
		c.History.Directory = HistoryDir()
	}
	return nil
}
