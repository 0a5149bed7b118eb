package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	// PollIntervalMs is the reconciliation cadence in milliseconds.
	PollIntervalMs int `mapstructure:"poll_interval_ms" default:"1500" validate:"gte=250,lte=60000"`

	// MaxLabelChars caps the compact menu-bar label, in user-perceived
	// characters.
	MaxLabelChars int `mapstructure:"max_label_chars" default:"24" validate:"gte=4,lte=120"`

	// DisableArtwork skips artwork fetching entirely.
	DisableArtwork bool `mapstructure:"disable_artwork"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" default:"info" validate:"oneof=debug info warn error"`
}

// PollInterval returns the poll cadence as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// Load reads configuration from file and environment, applies defaults
// and validates the result.
func Load() (*Config, error) {
	// The struct tags are the single source of default values; they are
	// registered on viper so env-only keys are visible to Unmarshal.
	def := &Config{}
	if err := defaults.Set(def); err != nil {
		return nil, fmt.Errorf("failed to set defaults: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getConfigDir())
	v.AddConfigPath(".")

	v.SetDefault("poll_interval_ms", def.PollIntervalMs)
	v.SetDefault("max_label_chars", def.MaxLabelChars)
	v.SetDefault("disable_artwork", def.DisableArtwork)
	v.SetDefault("log_level", def.LogLevel)

	// Config file is optional
	_ = v.ReadInConfig()

	v.SetEnvPrefix("SPOTBAR")
	v.AutomaticEnv()

	// Unmarshal rather than per-key Get: a malformed value (e.g. a
	// non-numeric poll interval) fails here instead of silently
	// collapsing to zero and being replaced by the default.
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration against its constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// getConfigDir returns the configuration directory path, creating it if
// needed.
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "spotbar")
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}
