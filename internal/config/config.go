// Package config provides configuration management for the analytics CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	"deriverse-cli/internal/analytics/profile"
)

// Config holds all application configuration.
type Config struct {
	Data    DataConfig     `mapstructure:"data"`
	Profile profile.Config `mapstructure:"profile"`
	UI      UIConfig       `mapstructure:"ui"`
	Export  ExportConfig   `mapstructure:"export"`
	Logging LoggingConfig  `mapstructure:"logging"`
}

// DataConfig holds trade data source configuration.
type DataConfig struct {
	Source string `mapstructure:"source"` // "mock" or "file"
	File   string `mapstructure:"file"`   // JSON trade file when source = "file"
	Seed   int64  `mapstructure:"seed"`   // mock generator seed
}

// UIConfig holds output formatting configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	TimeFormat   string `mapstructure:"time_format"`
}

// ExportConfig holds CSV export configuration.
type ExportConfig struct {
	Directory string `mapstructure:"directory"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"` // debug, info, warn, error
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/deriverse"
	}
	return filepath.Join(home, ".config", "deriverse")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target *Config) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// First run: materialize a template and continue with defaults.
			if werr := createTemplateConfig(configDir, name); werr != nil {
				return werr
			}
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.source", "mock")
	v.SetDefault("data.seed", 42)

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02-Jan-2006")
	v.SetDefault("ui.time_format", "15:04:05")

	v.SetDefault("export.directory", ".")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)

	def := profile.DefaultConfig()
	v.SetDefault("profile.revenge_trade_limit", def.RevengeTradeLimit)
	v.SetDefault("profile.overtrading_high_days", def.OvertradingHighDays)
	v.SetDefault("profile.cuts_winners_ratio", def.CutsWinnersRatio)
	v.SetDefault("profile.holds_losers_ratio", def.HoldsLosersRatio)
	v.SetDefault("profile.streak_size_factor", def.StreakSizeFactor)
	v.SetDefault("profile.streak_chase_limit", def.StreakChaseLimit)
	v.SetDefault("profile.time_concentration", def.TimeConcentration)
	v.SetDefault("profile.size_cv_limit", def.SizeCVLimit)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DERIVERSE_DATA_FILE"); v != "" {
		cfg.Data.Source = "file"
		cfg.Data.File = v
	}
	if v := os.Getenv("DERIVERSE_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Data.Seed = seed
		}
	}
	if v := os.Getenv("DERIVERSE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.UI.ColorEnabled = false
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Data.Source != "mock" && c.Data.Source != "file" {
		return fmt.Errorf("invalid data source: %s (must be 'mock' or 'file')", c.Data.Source)
	}
	if c.Data.Source == "file" && c.Data.File == "" {
		return fmt.Errorf("data source is 'file' but no file path is set")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Profile.RevengeTradeLimit < 1 {
		return fmt.Errorf("revenge_trade_limit must be at least 1")
	}
	if c.Profile.CutsWinnersRatio <= 0 || c.Profile.HoldsLosersRatio <= 0 {
		return fmt.Errorf("duration ratio thresholds must be positive")
	}
	if c.Profile.SizeCVLimit <= 0 {
		return fmt.Errorf("size_cv_limit must be positive")
	}

	return nil
}
