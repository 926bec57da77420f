package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// simulateFlags mirrors the simulate command's flag set so the config
// layering can be exercised without running cobra.
func simulateFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("simulate", pflag.ContinueOnError)
	fs.String("log-level", "info", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func boundViper(t *testing.T, fs *pflag.FlagSet) *viper.Viper {
	t.Helper()
	v := viper.New()
	require.NoError(t, v.BindPFlags(fs))
	return v
}

func writeConfigFile(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func TestResolveConfig_FileLevelSurvivesFlagDefault(t *testing.T) {
	path := writeConfigFile(t, "logging:\n  level: debug\n")
	fs := simulateFlags(t)

	cfg, err := resolveConfig(path, boundViper(t, fs), fs.Changed("log-level"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level,
		"an unset flag must not shadow the config file")
}

func TestResolveConfig_ExplicitFlagWinsOverFile(t *testing.T) {
	path := writeConfigFile(t, "logging:\n  level: debug\n")
	fs := simulateFlags(t, "--log-level", "error")

	cfg, err := resolveConfig(path, boundViper(t, fs), fs.Changed("log-level"))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestResolveConfig_DefaultsWithoutFile(t *testing.T) {
	fs := simulateFlags(t)

	cfg, err := resolveConfig("", boundViper(t, fs), fs.Changed("log-level"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestResolveConfig_RejectsInvalidLevel(t *testing.T) {
	fs := simulateFlags(t, "--log-level", "loud")

	_, err := resolveConfig("", boundViper(t, fs), fs.Changed("log-level"))
	require.Error(t, err)
}
