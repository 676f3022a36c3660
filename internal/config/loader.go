package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "GONOTE_"

// Load reads configuration from the YAML file at configPath, then
// overrides with GONOTE_* environment variables.
//
// Precedence (highest to lowest):
//  1. Environment variables (GONOTE_USER_ID, GONOTE_AI_API_KEY, ...)
//  2. YAML config file (default ~/.config/gonote/config.yaml)
//  3. Defaults
//
// Environment variables map to config keys by splitting on the first
// underscore after the prefix: GONOTE_DATABASE_PATH -> database.path,
// GONOTE_AI_API_KEY -> ai.api_key.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".config", "gonote", "config.yaml")
	}

	if content, err := os.ReadFile(configPath); err == nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		// GONOTE_AI_API_KEY -> ai.api_key: section is everything up to
		// the first underscore, the rest keeps its underscores.
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".local", "share", "gonote")

	if cfg.User.ID == "" {
		cfg.User.ID = "local"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = filepath.Join(dataDir, "notes.db")
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.5-flash"
	}
	if cfg.AI.EmbedModel == "" {
		cfg.AI.EmbedModel = "gemini-embedding-001"
	}
	if cfg.Autosave.Delay == 0 {
		cfg.Autosave.Delay = 2 * time.Second
	}
	if cfg.Prefs.Path == "" {
		cfg.Prefs.Path = filepath.Join(dataDir, "prefs.json")
	}
}
