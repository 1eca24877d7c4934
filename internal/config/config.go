// Package config resolves runtime settings from a .env file (when present)
// and JOT_* environment variables, with sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Backend selects the storage implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

type Config struct {
	DataDir string  // where blobs live (file backend) / the sqlite db's dir
	Storage Backend // file | sqlite | memory
	Theme   string  // classic | neon | mono
}

// Load reads .env from the working directory when it exists, then the
// environment. Env vars always win over defaults.
func Load() (Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	cfg := Config{
		Storage: BackendFile,
		Theme:   "classic",
	}

	if dir := strings.TrimSpace(os.Getenv("JOT_DATA_DIR")); dir != "" {
		cfg.DataDir = dir
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("home: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".jot")
	}

	if s := strings.TrimSpace(os.Getenv("JOT_STORAGE")); s != "" {
		switch Backend(s) {
		case BackendFile, BackendSQLite, BackendMemory:
			cfg.Storage = Backend(s)
		default:
			return Config{}, fmt.Errorf("JOT_STORAGE: unknown backend %q", s)
		}
	}

	if t := strings.TrimSpace(os.Getenv("JOT_THEME")); t != "" {
		cfg.Theme = t
	}
	return cfg, nil
}

// SQLitePath is the database location under the data dir.
func (c Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "jot.db")
}
