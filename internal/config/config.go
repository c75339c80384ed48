package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/julianstephens/dayring/internal/constants"
)

// Config holds the runtime settings read from the environment. Every
// field can be set via DAYRING_* variables; a .env file in the working
// directory is loaded first when present.
type Config struct {
	APIBase   string `envconfig:"API_BASE"`
	ConfigDir string `envconfig:"CONFIG_DIR"`
	Storage   string `envconfig:"STORAGE" default:"sqlite"`
	Debug     bool   `envconfig:"DEBUG" default:"false"`
}

// Load reads the configuration, applying defaults for anything unset.
func Load() (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("dayring", &cfg); err != nil {
		return nil, err
	}
	if cfg.APIBase == "" {
		cfg.APIBase = constants.DefaultAPIBase
	}
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")
	if cfg.ConfigDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.ConfigDir = filepath.Join(home, ".config", constants.AppName)
	}
	return &cfg, nil
}

// StorePath is the local key-value store location for the configured
// backend.
func (c *Config) StorePath() string {
	if c.Storage == "json" {
		return filepath.Join(c.ConfigDir, "dayring.json")
	}
	return filepath.Join(c.ConfigDir, "dayring.db")
}
