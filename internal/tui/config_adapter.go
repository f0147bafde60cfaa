package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quantmind-br/tiappxml/internal/config"
)

// ConfigValues holds form values that map to Config struct.
// Numeric and duration fields are stored as strings for form editing.
type ConfigValues struct {
	LogLevel  string
	LogFormat string

	ManifestFile string
	StartDir     string

	OutputFormat string

	HistoryEnabled   bool
	HistoryDirectory string
	HistoryTTL       string
	HistoryLimit     string
}

// FromConfig converts a Config to ConfigValues for form editing
func FromConfig(cfg *config.Config) *ConfigValues {
	return &ConfigValues{
		LogLevel:  cfg.Logging.Level,
		LogFormat: cfg.Logging.Format,

		ManifestFile: formatFileValue(cfg.Manifest.File),
		StartDir:     cfg.Manifest.StartDir,

		OutputFormat: cfg.Output.Format,

		HistoryEnabled:   cfg.History.Enabled,
		HistoryDirectory: cfg.History.Directory,
		HistoryTTL:       formatDuration(cfg.History.TTL),
		HistoryLimit:     formatInt(cfg.History.Limit),
	}
}

// ToConfig converts ConfigValues back to a validated Config struct
func (v *ConfigValues) ToConfig() (*config.Config, error) {
	ttl, err := parseDurationOrDefault(v.HistoryTTL, config.DefaultHistoryTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid history.ttl: %w", err)
	}

	limit, err := parseIntOrDefault(v.HistoryLimit, config.DefaultHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid history.limit: %w", err)
	}

	cfg := &config.Config{
		Logging: config.LoggingConfig{
			Level:  v.LogLevel,
			Format: v.LogFormat,
		},
		Manifest: config.ManifestConfig{
			StartDir: strings.TrimSpace(v.StartDir),
		},
		Output: config.OutputConfig{
			Format: v.OutputFormat,
		},
		History: config.HistoryConfig{
			Enabled:   v.HistoryEnabled,
			Directory: strings.TrimSpace(v.HistoryDirectory),
			TTL:       ttl,
			Limit:     limit,
		},
	}
	if file := strings.TrimSpace(v.ManifestFile); file != "" {
		cfg.Manifest.File = file
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// formatFileValue renders manifest.file for editing; the form can only
// produce strings, so other values are shown as text and saved as text.
func formatFileValue(v any) string {
	switch f := v.(type) {
	case nil:
		return ""
	case string:
		return f
	default:
		return fmt.Sprint(f)
	}
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func parseDurationOrDefault(s string, defaultVal time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(s)
}

func parseIntOrDefault(s string, defaultVal int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}
