package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk layout; durations are written as strings
type fileConfig struct {
	Logging  LoggingConfig `yaml:"logging"`
	Manifest struct {
		File     any    `yaml:"file,omitempty"`
		StartDir string `yaml:"start_dir,omitempty"`
	} `yaml:"manifest"`
	Output  OutputConfig `yaml:"output"`
	History struct {
		Enabled   bool   `yaml:"enabled"`
		Directory string `yaml:"directory"`
		TTL       string `yaml:"ttl"`
		Limit     int    `yaml:"limit"`
	} `yaml:"history"`
}

// Marshal encodes cfg as a YAML config file
func Marshal(cfg *Config) ([]byte, error) {
	var fc fileConfig
	fc.Logging = cfg.Logging
	fc.Manifest.File = cfg.Manifest.File
	fc.Manifest.StartDir = cfg.Manifest.StartDir
	fc.Output = cfg.Output
	fc.History.Enabled = cfg.History.Enabled
	fc.History.Directory = cfg.History.Directory
	fc.History.TTL = cfg.History.TTL.String()
	fc.History.Limit = cfg.History.Limit

	return yaml.Marshal(&fc)
}

// Save validates cfg and writes it to path, creating parent directories
func Save(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
