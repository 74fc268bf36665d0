// Package config loads and persists the application settings at
// ~/.config/stratizen/config.yaml via viper. Theme and typography are
// user preferences written back on change; absent keys resolve to the
// documented defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ThemeMode selects the UI palette.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// FontSize scales the typography.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// FontFamily picks the typeface variant.
type FontFamily string

const (
	FamilyDefault FontFamily = "default"
	FamilyAlice   FontFamily = "alice"
)

type ReminderConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	LeadMinutes int    `mapstructure:"lead"` // minutes before the event
	Timezone    string `mapstructure:"timezone"`
}

type Config struct {
	Theme      ThemeMode      `mapstructure:"theme"`
	FontSize   FontSize       `mapstructure:"font_size"`
	FontFamily FontFamily     `mapstructure:"font_family"`
	DBPath     string         `mapstructure:"db_path"`
	Reminder   ReminderConfig `mapstructure:"reminder"`
}

func Default() Config {
	return Config{
		Theme:      ThemeSystem,
		FontSize:   FontMedium,
		FontFamily: FamilyDefault,
		DBPath:     "",
		Reminder: ReminderConfig{
			Enabled:     true,
			LeadMinutes: 0,
			Timezone:    "",
		},
	}
}

func xdgConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "stratizen")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func newViper(path string, cfg Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	// defaults
	v.SetDefault("theme", string(cfg.Theme))
	v.SetDefault("font_size", string(cfg.FontSize))
	v.SetDefault("font_family", string(cfg.FontFamily))
	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.lead", cfg.Reminder.LeadMinutes)
	v.SetDefault("reminder.timezone", cfg.Reminder.Timezone)

	return v
}

// Load reads the config file, falling back to defaults when the file
// or individual keys are missing.
func Load() (Config, error) {
	path, err := xdgConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	v := newViper(path, cfg)
	_ = v.ReadInConfig() // ok if missing
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}
	return Normalize(cfg), nil
}

// Save writes the config back to the default path so preference
// changes survive restarts.
func Save(cfg Config) error {
	path, err := xdgConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes the config to an explicit path.
func SaveTo(path string, cfg Config) error {
	cfg = Normalize(cfg)

	v := newViper(path, cfg)
	v.Set("theme", string(cfg.Theme))
	v.Set("font_size", string(cfg.FontSize))
	v.Set("font_family", string(cfg.FontFamily))
	v.Set("db_path", cfg.DBPath)
	v.Set("reminder.enabled", cfg.Reminder.Enabled)
	v.Set("reminder.lead", cfg.Reminder.LeadMinutes)
	v.Set("reminder.timezone", cfg.Reminder.Timezone)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("config write: %w", err)
	}
	return nil
}

// Normalize folds unknown enum values back to their defaults.
func Normalize(cfg Config) Config {
	switch ThemeMode(strings.ToLower(string(cfg.Theme))) {
	case ThemeLight:
		cfg.Theme = ThemeLight
	case ThemeDark:
		cfg.Theme = ThemeDark
	default:
		cfg.Theme = ThemeSystem
	}
	switch FontSize(strings.ToLower(string(cfg.FontSize))) {
	case FontSmall:
		cfg.FontSize = FontSmall
	case FontLarge:
		cfg.FontSize = FontLarge
	default:
		cfg.FontSize = FontMedium
	}
	switch FontFamily(strings.ToLower(string(cfg.FontFamily))) {
	case FamilyAlice:
		cfg.FontFamily = FamilyAlice
	default:
		cfg.FontFamily = FamilyDefault
	}
	return cfg
}

// Location resolves the configured reminder timezone, defaulting to
// the system locale.
func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Reminder.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}
