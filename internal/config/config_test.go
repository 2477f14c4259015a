package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears a variable for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TRIPSHEET_ENV_FILE", filepath.Join(t.TempDir(), "empty.env"))
	require.NoError(t, os.WriteFile(os.Getenv("TRIPSHEET_ENV_FILE"), nil, 0o644))
	unsetEnv(t, "TRIPSHEET_DB")
	unsetEnv(t, "TRIPSHEET_DICTIONARY")
	unsetEnv(t, "TRIPSHEET_LOG_CALLS")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".tripsheet", "tripsheet.db"), cfg.DBPath)
	assert.Empty(t, cfg.DictionaryPath)
	assert.False(t, cfg.LogCalls)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	unsetEnv(t, "TRIPSHEET_ENV_FILE")
	t.Setenv("TRIPSHEET_DB", "/tmp/trips.db")
	t.Setenv("TRIPSHEET_DICTIONARY", "/tmp/dict.yaml")
	t.Setenv("TRIPSHEET_LOG_CALLS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/trips.db", cfg.DBPath)
	assert.Equal(t, "/tmp/dict.yaml", cfg.DictionaryPath)
	assert.True(t, cfg.LogCalls)
}

func TestLoad_InvalidBoolIgnored(t *testing.T) {
	unsetEnv(t, "TRIPSHEET_ENV_FILE")
	t.Setenv("TRIPSHEET_LOG_CALLS", "sometimes")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.LogCalls)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tripsheet.env")
	require.NoError(t, os.WriteFile(path, []byte("TRIPSHEET_DICTIONARY=/etc/tripsheet/dict.yaml\nTRIPSHEET_DB=/from/file.db\n"), 0o644))

	t.Setenv("TRIPSHEET_ENV_FILE", path)
	unsetEnv(t, "TRIPSHEET_DICTIONARY")
	t.Setenv("TRIPSHEET_DB", "/from/env.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/etc/tripsheet/dict.yaml", cfg.DictionaryPath)
	assert.Equal(t, "/from/env.db", cfg.DBPath, "the process environment wins over the file")
}

func TestLoad_MissingEnvFile(t *testing.T) {
	t.Setenv("TRIPSHEET_ENV_FILE", filepath.Join(t.TempDir(), "nope.env"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading env file")
}
