package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/tiappxml/tests/testutil"
)

// isolate points HOME and the working directory at empty temp directories
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	work := t.TempDir()
	testutil.Chdir(t, work)
	return work
}

// TestConfig_Validate tests configuration validation
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		check   func(*testing.T, *Config)
		wantErr bool
	}{
		{
			name: "valid config",
			modify: func(c *Config) {
				c.Output.Format = FormatJSON
				c.History.TTL = time.Hour
				c.History.Limit = 5
				c.History.Directory = "/tmp/history"
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, FormatJSON, c.Output.Format)
				assert.Equal(t, time.Hour, c.History.TTL)
				assert.Equal(t, 5, c.History.Limit)
				assert.Equal(t, "/tmp/history", c.History.Directory)
			},
		},
		{
			name: "empty format defaults to text",
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, FormatText, c.Output.Format)
			},
		},
		{
			name: "format is case insensitive",
			modify: func(c *Config) {
				c.Output.Format = " YAML "
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, FormatYAML, c.Output.Format)
			},
		},
		{
			name: "unknown format is rejected",
			modify: func(c *Config) {
				c.Output.Format = "xml"
			},
			wantErr: true,
		},
		{
			name: "history TTL below minimum uses default",
			modify: func(c *Config) {
				c.History.TTL = 10 * time.Second
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultHistoryTTL, c.History.TTL)
			},
		},
		{
			name: "history limit below minimum uses default",
			modify: func(c *Config) {
				c.History.Limit = 0
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultHistoryLimit, c.History.Limit)
			},
		},
		{
			name: "empty logging settings use defaults",
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultLogLevel, c.Logging.Level)
				assert.Equal(t, DefaultLogFormat, c.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			if tt.modify != nil {
				tt.modify(cfg)
			}

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

// TestDefault tests default configuration
func TestDefault(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
	assert.Nil(t, cfg.Manifest.File)
	assert.Empty(t, cfg.Manifest.StartDir)
	assert.Equal(t, FormatText, cfg.Output.Format)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, DefaultHistoryTTL, cfg.History.TTL)
	assert.Equal(t, DefaultHistoryLimit, cfg.History.Limit)
	assert.Equal(t, HistoryDir(), cfg.History.Directory)

	assert.NoError(t, cfg.Validate())
}

// TestPaths tests config, history and file paths
func TestPaths(t *testing.T) {
	assert.True(t, strings.HasSuffix(ConfigDir(), ".tiapp"))
	assert.Equal(t, filepath.Join(ConfigDir(), "history"), HistoryDir())
	assert.Equal(t, filepath.Join(ConfigDir(), "config.yaml"), ConfigFilePath())
}

// TestEnsureDirs tests creating the config and history directories
func TestEnsureDirs(t *testing.T) {
	isolate(t)

	require.NoError(t, EnsureConfigDir())
	require.NoError(t, EnsureHistoryDir())

	for _, dir := range []string{ConfigDir(), HistoryDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

// TestLoad_MissingConfig tests that a missing config file yields defaults
func TestLoad_MissingConfig(t *testing.T) {
	isolate(t)

	cfg, v, err := LoadWithViper()
	require.NoError(t, err)
	require.NotNil(t, v)

	assert.Equal(t, FormatText, cfg.Output.Format)
	assert.True(t, cfg.History.Enabled)
	assert.Nil(t, cfg.Manifest.File)
	assert.Equal(t, DefaultHistoryLimit, cfg.History.Limit)
}

// TestLoad_InvalidConfigFile tests loading a malformed config file
func TestLoad_InvalidConfigFile(t *testing.T) {
	work := isolate(t)
	testutil.WriteFile(t, work, "config.yaml", "invalid: yaml: content: [")

	cfg, _, err := LoadWithViper()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

// TestLoad_InvalidFormat tests that Validate errors surface from loading
func TestLoad_InvalidFormat(t *testing.T) {
	work := isolate(t)
	testutil.WriteFile(t, work, "config.yaml", "output:\n  format: toml\n")

	_, _, err := LoadWithViper()
	assert.ErrorContains(t, err, "output.format")
}

// TestLoad_ValidConfigFile tests loading values from a config file
func TestLoad_ValidConfigFile(t *testing.T) {
	work := isolate(t)
	testutil.WriteFile(t, work, "config.yaml", `
logging:
  level: debug
manifest:
  file: ./app/tiapp.xml
  start_dir: ./app
output:
  format: yaml
history:
  enabled: false
  ttl: 2h
  limit: 3
`)

	cfg, _, err := LoadWithViper()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "./app/tiapp.xml", cfg.Manifest.File)
	assert.Equal(t, "./app", cfg.Manifest.StartDir)
	assert.Equal(t, FormatYAML, cfg.Output.Format)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 2*time.Hour, cfg.History.TTL)
	assert.Equal(t, 3, cfg.History.Limit)
}

// TestLoad_NonStringManifestFile tests that a non-string file value is kept as is
func TestLoad_NonStringManifestFile(t *testing.T) {
	work := isolate(t)
	testutil.WriteFile(t, work, "config.yaml", "manifest:\n  file: 42\n")

	cfg, _, err := LoadWithViper()
	require.NoError(t, err)

	_, isString := cfg.Manifest.File.(string)
	assert.False(t, isString)
	assert.EqualValues(t, 42, cfg.Manifest.File)
}

// TestLoad_EnvironmentVariable tests environment overrides
func TestLoad_EnvironmentVariable(t *testing.T) {
	isolate(t)
	t.Setenv("TIAPP_OUTPUT_FORMAT", "json")
	t.Setenv("TIAPP_MANIFEST_START_DIR", "/work/app")

	cfg, _, err := LoadWithViper()
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, "/work/app", cfg.Manifest.StartDir)
}

// TestLoad_GlobalViper tests loading through the global viper instance
func TestLoad_GlobalViper(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

// TestLoadFrom_ExplicitConfigFile tests that a config file set on the instance is used
func TestLoadFrom_ExplicitConfigFile(t *testing.T) {
	isolate(t)
	path := testutil.WriteFile(t, t.TempDir(), "custom.yaml", "output:\n  format: json\n")

	v := viper.New()
	v.SetConfigFile(path)

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, path, v.ConfigFileUsed())
}

// TestLoadFrom_MissingExplicitFile tests that a --config path that does not exist yet yields defaults
func TestLoadFrom_MissingExplicitFile(t *testing.T) {
	isolate(t)

	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, FormatText, cfg.Output.Format)
}
