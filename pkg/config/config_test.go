package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/spawnpool/pkg/config"
	"github.com/ajitpratap0/spawnpool/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Encoding)
	assert.True(t, cfg.Metrics.Enabled)
	assert.NotNil(t, cfg.Prewarm)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad log level", func(c *config.Config) { c.Logging.Level = "verbose" }},
		{"bad encoding", func(c *config.Config) { c.Logging.Encoding = "xml" }},
		{"negative default size", func(c *config.Config) { c.Pools.DefaultStartingSize = -1 }},
		{"empty prewarm template", func(c *config.Config) { c.Prewarm[""] = 4 }},
		{"negative prewarm size", func(c *config.Config) { c.Prewarm["enemy/grunt"] = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
		})
	}
}

func TestLoad_YAMLWithEnvSubstitution(t *testing.T) {
	t.Setenv("SPAWNPOOL_TEST_LEVEL", "debug")

	raw := `
logging:
  level: ${SPAWNPOOL_TEST_LEVEL}
  encoding: console
metrics:
  enabled: false
prewarm:
  enemy/grunt: 16
  pickup/health: 4
`
	path := filepath.Join(t.TempDir(), "pools.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	var cfg config.Config
	require.NoError(t, config.Load(path, &cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Encoding)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 16, cfg.Prewarm["enemy/grunt"])
	assert.Equal(t, 4, cfg.Prewarm["pickup/health"])
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg config.Config
	err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"), &cfg)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Prewarm["enemy/boss"] = 2

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, config.Save(path, cfg))

	var loaded config.Config
	require.NoError(t, config.Load(path, &loaded))
	assert.Equal(t, cfg.Prewarm, loaded.Prewarm)
	assert.Equal(t, cfg.Logging, loaded.Logging)
}
