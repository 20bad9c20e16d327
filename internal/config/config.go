// Package config provides application-level settings for agx using Viper.
//
// These are preferences of the tool itself (default agent, log format),
// not the provider profile document, which lives in internal/profile.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/thoreinstein/agx/internal/paths"
)

// Config represents the top-level settings structure.
type Config struct {
	Version      int    `mapstructure:"version" yaml:"version"`
	DefaultAgent string `mapstructure:"default_agent" yaml:"default_agent"`
	LogFormat    string `mapstructure:"log_format" yaml:"log_format"`
}

// Init initializes Viper with default settings.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support (AGX_DEFAULT_AGENT etc.)
	viper.SetEnvPrefix("AGX")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("default_agent", paths.AgentClaude)
	viper.SetDefault("log_format", "text")
}

// Load reads the settings file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded settings or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If the user specified a path, a missing file is an error;
			// an implicit load falls back to defaults.
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
		} else {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if !paths.ValidAgent(cfg.DefaultAgent) {
		return nil, fmt.Errorf("unknown default_agent %q", cfg.DefaultAgent)
	}

	return &cfg, nil
}
