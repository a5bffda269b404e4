package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, &Config{LogLevel: "info", SourceK: 28}, c)

	lvl, err := c.Level()
	require.NoError(t, err)
	require.Equal(t, zerolog.InfoLevel, lvl)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("KZGSRS_WORKERS", "3")
	t.Setenv("KZGSRS_LOG_LEVEL", "debug")
	t.Setenv("KZGSRS_RAW", "true")
	t.Setenv("KZGSRS_SKIP_UP_TO_DATE", "1")
	t.Setenv("KZGSRS_SOURCE_K", "20")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, &Config{Workers: 3, LogLevel: "debug", Raw: true, SkipUpToDate: true,
		SourceK: 20}, c)
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "kzgsrs.yaml")
	require.NoError(t, os.WriteFile(file, []byte("workers: 2\nraw: true\nlog_level: warn\n"), 0644))
	t.Setenv("KZGSRS_CONFIG", file)
	t.Setenv("KZGSRS_LOG_LEVEL", "error")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, 2, c.Workers)
	require.True(t, c.Raw)
	require.Equal(t, "error", c.LogLevel, "the environment overrides the file")
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("KZGSRS_LOG_LEVEL", "loud")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("KZGSRS_LOG_LEVEL", "info")
	t.Setenv("KZGSRS_WORKERS", "-1")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("KZGSRS_WORKERS", "1")
	t.Setenv("KZGSRS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	require.Error(t, err)
}
