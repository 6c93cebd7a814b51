// Package config defines the CLI configuration structure.
package config

// Config is the configuration for tab-bookmark.
type Config struct {
	Store     StoreConfig     `koanf:"store"`
	Workspace WorkspaceConfig `koanf:"workspace"`
	Log       LogConfig       `koanf:"log"`

	// Output is the default listing format: table, json or yaml.
	Output string `koanf:"output"`
}

// StoreConfig selects and configures the bookmark store backend.
type StoreConfig struct {
	// Backend is one of "file", "badger" or "memory".
	Backend string `koanf:"backend"`

	// Path is the bookmark file (file backend) or database directory
	// (badger backend). Empty means the backend's default location.
	Path string `koanf:"path"`

	// Passphrase enables at-rest encryption for the badger backend.
	Passphrase string `koanf:"passphrase"`

	// Algorithm is the encryption algorithm when a passphrase is set.
	Algorithm string `koanf:"algorithm"`

	// Watch reloads the file backend when the bookmark file changes
	// on disk, so concurrent editor instances see each other's saves.
	Watch bool `koanf:"watch"`
}

// WorkspaceConfig configures the workspace collaborator.
type WorkspaceConfig struct {
	// Multiplexer names the workspace implementation. Only "tmux"
	// is currently supported.
	Multiplexer string `koanf:"multiplexer"`

	// Hidden includes hidden buffers in snapshots.
	Hidden bool `koanf:"hidden"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Store backends.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendFile,
			Watch:   true,
		},
		Workspace: WorkspaceConfig{
			Multiplexer: "tmux",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: "table",
	}
}
