package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"), "/data")
		require.NoError(t, err)

		assert.Equal(t, "dark", cfg.Theme)
		assert.Equal(t, "/data", cfg.DataDir)
		assert.Equal(t, 5*time.Minute, cfg.Notifications.Interval.Duration)
		assert.Equal(t, 30*time.Minute, cfg.Notifications.Cooldown.Duration)
		assert.Equal(t, 2*time.Second, cfg.Notifications.StartupDelay.Duration)
		assert.True(t, cfg.Notifications.EnabledOrDefault())
	})

	t.Run("file overrides are merged with defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
theme: light
notifications:
  enabled: false
  interval: 1m
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := Load(path, "/data")
		require.NoError(t, err)

		assert.Equal(t, "light", cfg.Theme)
		assert.False(t, cfg.Notifications.EnabledOrDefault())
		assert.Equal(t, time.Minute, cfg.Notifications.Interval.Duration)
		// Untouched keys keep defaults.
		assert.Equal(t, 30*time.Minute, cfg.Notifications.Cooldown.Duration)
		assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	})

	t.Run("invalid theme rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("theme: solarized\n"), 0o644))

		_, err := Load(path, "/data")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "theme")
	})

	t.Run("interval below a second rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("notifications:\n  interval: 100ms\n"), 0o644))

		_, err := Load(path, "/data")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "interval")
	})

	t.Run("malformed duration rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("notifications:\n  cooldown: soonish\n"), 0o644))

		_, err := Load(path, "/data")
		require.Error(t, err)
	})
}

func TestEnabledOrDefault(t *testing.T) {
	assert.True(t, Notifications{}.EnabledOrDefault())

	on := true
	assert.True(t, Notifications{Enabled: &on}.EnabledOrDefault())

	off := false
	assert.False(t, Notifications{Enabled: &off}.EnabledOrDefault())
}
