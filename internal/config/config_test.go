package config

import (
	"testing"
	"time"

	"github.com/creasty/defaults"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, defaults.Set(cfg))

	assert.Equal(t, 1500, cfg.PollIntervalMs)
	assert.Equal(t, 24, cfg.MaxLabelChars)
	assert.False(t, cfg.DisableArtwork)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1500*time.Millisecond, cfg.PollInterval())

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "poll interval too small",
			mutate:  func(c *Config) { c.PollIntervalMs = 100 },
			wantErr: true,
		},
		{
			name:    "poll interval too large",
			mutate:  func(c *Config) { c.PollIntervalMs = 120000 },
			wantErr: true,
		},
		{
			name:    "label cap too small",
			mutate:  func(c *Config) { c.MaxLabelChars = 1 },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			require.NoError(t, defaults.Set(cfg))
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SPOTBAR_POLL_INTERVAL_MS", "3000")
	t.Setenv("SPOTBAR_DISABLE_ARTWORK", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.PollIntervalMs)
	assert.True(t, cfg.DisableArtwork)
	// Untouched keys keep their defaults
	assert.Equal(t, 24, cfg.MaxLabelChars)
}

func TestLoad_RejectsInvalidEnv(t *testing.T) {
	t.Setenv("SPOTBAR_POLL_INTERVAL_MS", "10")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsMalformedEnv(t *testing.T) {
	t.Setenv("SPOTBAR_POLL_INTERVAL_MS", "abc")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}
