// Package config provides configuration management for the trading journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	"tradetrackr/internal/analytics"
)

// Config holds all application configuration.
type Config struct {
	Account   AccountConfig   `mapstructure:"account"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Sessions  []SessionConfig `mapstructure:"sessions"`
	UI        UIConfig        `mapstructure:"ui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// AccountConfig holds account-level settings.
type AccountConfig struct {
	InitialCapital float64 `mapstructure:"initial_capital"`
	Currency       string  `mapstructure:"currency"`
	DatabasePath   string  `mapstructure:"database_path"`
}

// AnalyticsConfig holds tunables for the analytics engine.
type AnalyticsConfig struct {
	DistributionBuckets int `mapstructure:"distribution_buckets"`
}

// SessionConfig holds one trading session boundary. Hours are in the
// local day, start inclusive, end exclusive; end <= start wraps past
// midnight.
type SessionConfig struct {
	Label     string `mapstructure:"label"`
	StartHour int    `mapstructure:"start_hour"`
	EndHour   int    `mapstructure:"end_hour"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	TimeFormat   string `mapstructure:"time_format"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/tradetrackr"
	}
	return filepath.Join(home, ".config", "tradetrackr")
}

// Load loads configuration from the specified directory. If configDir
// is empty, the default config directory is used. A missing config file
// is not an error: a template is written and the defaults apply, so the
// journal works on first run.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createTemplateConfig(configDir); err != nil {
				return nil, err
			}
		} else {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("account.initial_capital", 10000.0)
	v.SetDefault("account.currency", "USD")
	v.SetDefault("account.database_path", filepath.Join(configDir, "journal.db"))
	v.SetDefault("analytics.distribution_buckets", analytics.DefaultBucketCount)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02-Jan-2006")
	v.SetDefault("ui.time_format", "15:04:05")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", filepath.Join(configDir, "tradetrackr.log"))
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 30)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRADETRACKR_DB"); v != "" {
		cfg.Account.DatabasePath = v
	}
	if v := os.Getenv("TRADETRACKR_CAPITAL"); v != "" {
		if capital, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Account.InitialCapital = capital
		}
	}
	if v := os.Getenv("TRADETRACKR_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// TradingSessions returns the configured session boundaries, falling
// back to the built-in split when none are configured.
func (c *Config) TradingSessions() []analytics.Session {
	if len(c.Sessions) == 0 {
		return analytics.DefaultSessions()
	}
	sessions := make([]analytics.Session, len(c.Sessions))
	for i, s := range c.Sessions {
		sessions[i] = analytics.Session{Label: s.Label, StartHour: s.StartHour, EndHour: s.EndHour}
	}
	return sessions
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Account.InitialCapital <= 0 {
		return fmt.Errorf("initial_capital must be positive")
	}
	if c.Analytics.DistributionBuckets <= 0 {
		return fmt.Errorf("distribution_buckets must be positive")
	}

	for _, s := range c.Sessions {
		if s.Label == "" {
			return fmt.Errorf("session label must not be empty")
		}
		if s.StartHour < 0 || s.StartHour > 23 || s.EndHour < 0 || s.EndHour > 23 {
			return fmt.Errorf("session %q hours must be within 0-23", s.Label)
		}
	}
	if err := analytics.ValidateSessions(c.TradingSessions()); err != nil {
		return fmt.Errorf("sessions: %w", err)
	}

	return nil
}
