// Package config defines the CLI configuration structure.
package config

import (
	"os"
	"path/filepath"

	"github.com/minad/tab-bookmark/internal/core/domain"
	"github.com/minad/tab-bookmark/internal/infra/confloader"
)

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".tab-bookmark", "config.yaml")
}

// Load loads the configuration from file and environment.
//
// A missing file is not an error: defaults and TAB_BOOKMARK_* environment
// variables still apply. Environment overrides file, file overrides
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = ""
		}
	}

	loader := confloader.NewLoader(confloader.WithConfigFile(path))

	cfg := Default()
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendBadger, BackendMemory:
	default:
		return domain.ErrInvalidArgument.WithDetails("unknown store backend: " + c.Store.Backend)
	}

	switch c.Output {
	case "table", "json", "yaml":
	default:
		return domain.ErrInvalidArgument.WithDetails("unknown output format: " + c.Output)
	}

	return nil
}
