// Package config provides configuration loading for gonote.
package config

import (
	"fmt"
	"time"
)

// Config is the top-level application configuration.
type Config struct {
	User     UserConfig     `koanf:"user"`
	Database DatabaseConfig `koanf:"database"`
	AI       AIConfig       `koanf:"ai"`
	Autosave AutosaveConfig `koanf:"autosave"`
	Prefs    PrefsConfig    `koanf:"prefs"`
}

// UserConfig identifies whose notes this client operates on.
type UserConfig struct {
	ID string `koanf:"id"`
}

// DatabaseConfig points at the SQLite file backing the data source.
type DatabaseConfig struct {
	Path string `koanf:"path"`
}

// AIConfig configures the Gemini collaborator. An empty APIKey
// disables the AI commands.
type AIConfig struct {
	APIKey     string `koanf:"api_key"`
	Model      string `koanf:"model"`
	EmbedModel string `koanf:"embed_model"`
}

// AutosaveConfig tunes the editor save debounce.
type AutosaveConfig struct {
	Delay time.Duration `koanf:"delay"`
}

// PrefsConfig locates the persisted view preferences.
type PrefsConfig struct {
	Path string `koanf:"path"`
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.User.ID == "" {
		return fmt.Errorf("user.id must be set")
	}
	if c.Autosave.Delay < 0 {
		return fmt.Errorf("autosave.delay must not be negative")
	}
	return nil
}
