// Package config handles configuration loading and validation for nag.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Theme         string        `yaml:"theme"`
	Notifications Notifications `yaml:"notifications"`
	Database      Database      `yaml:"database"`
	DataDir       string        `yaml:"-"` // set by caller, not from config file
}

// Notifications controls the deadline reminder scheduler.
type Notifications struct {
	// Enabled gates alert dispatch. nil means enabled; scanning and
	// counting continue regardless.
	Enabled *bool `yaml:"enabled"`
	// Interval between deadline scans.
	Interval Duration `yaml:"interval"`
	// Cooldown suppresses repeat alerts for the same task.
	Cooldown Duration `yaml:"cooldown"`
	// StartupDelay before the first scan after the app starts.
	StartupDelay Duration `yaml:"startup_delay"`
}

// EnabledOrDefault resolves the tri-state Enabled flag (nil = enabled).
func (n Notifications) EnabledOrDefault() bool {
	return n.Enabled == nil || *n.Enabled
}

// Database holds SQLite connection settings.
type Database struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// Duration wraps time.Duration so config files can use "5m" / "30m" forms.
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}

	d.Duration = parsed
	return nil
}

// MarshalYAML renders the duration in its string form.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: "dark",
		Notifications: Notifications{
			Interval:     Duration{5 * time.Minute},
			Cooldown:     Duration{30 * time.Minute},
			StartupDelay: Duration{2 * time.Second},
		},
		Database: Database{
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			BusyTimeout:  5000,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided
// dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.Notifications.Interval.Duration == 0 {
		c.Notifications.Interval = def.Notifications.Interval
	}
	if c.Notifications.Cooldown.Duration == 0 {
		c.Notifications.Cooldown = def.Notifications.Cooldown
	}
	if c.Notifications.StartupDelay.Duration == 0 {
		c.Notifications.StartupDelay = def.Notifications.StartupDelay
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = def.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = def.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = def.Database.BusyTimeout
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Theme != "dark" && c.Theme != "light" {
		return fmt.Errorf("theme must be \"dark\" or \"light\", got %q", c.Theme)
	}
	if c.Notifications.Interval.Duration < time.Second {
		return fmt.Errorf("notifications.interval must be at least 1s, got %s", c.Notifications.Interval)
	}
	if c.Notifications.Cooldown.Duration < 0 {
		return fmt.Errorf("notifications.cooldown must not be negative, got %s", c.Notifications.Cooldown)
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1, got %d", c.Database.MaxOpenConns)
	}
	return nil
}
