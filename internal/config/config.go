// Package config resolves runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the settings the binary needs at startup.
type Config struct {
	// DBPath is the SQLite file holding trips and itineraries.
	DBPath string
	// DictionaryPath optionally points at a YAML keyword dictionary.
	DictionaryPath string
	// LogCalls turns on use-case logging to stderr.
	LogCalls bool
}

// DefaultConfig returns the settings used when nothing is configured.
// The database lives under ~/.tripsheet.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return Config{
		DBPath: filepath.Join(home, ".tripsheet", "tripsheet.db"),
	}, nil
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset values. A .env file in the working directory, or
// the file named by TRIPSHEET_ENV_FILE, is loaded first; variables already
// set in the environment take precedence over it.
func Load() (Config, error) {
	if path := os.Getenv("TRIPSHEET_ENV_FILE"); path != "" {
		if err := godotenv.Load(path); err != nil {
			return Config{}, fmt.Errorf("loading env file %s: %w", path, err)
		}
	} else {
		// Optional; a missing .env is not an error.
		_ = godotenv.Load()
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	if v := os.Getenv("TRIPSHEET_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TRIPSHEET_DICTIONARY"); v != "" {
		cfg.DictionaryPath = v
	}
	if v := os.Getenv("TRIPSHEET_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	return cfg, nil
}
