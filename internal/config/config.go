// Package config loads and saves the mchallenge TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Rhymond/go-money"
	"github.com/go-playground/validator/v10"
)

// DataEnv overrides the challenge store path when set.
const DataEnv = "MCHALLENGE_DATA"

// Config holds all mchallenge configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Display    DisplayConfig    `toml:"display"`
	Appearance AppearanceConfig `toml:"appearance"`
	Daemon     DaemonConfig     `toml:"daemon"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultLength int    `toml:"default_length" validate:"oneof=30 60 90"`
	DataPath      string `toml:"data_path,omitempty"`
}

// DisplayConfig controls how amounts are shown.
type DisplayConfig struct {
	Currency string `toml:"currency" validate:"required,currency"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" validate:"oneof=flexoki-dark catppuccin-mocha tokyo-night terminal"`
}

// DaemonConfig holds settings for the local status feed.
type DaemonConfig struct {
	Addr        string `toml:"addr" validate:"required,hostname_port"`
	IntervalSec int    `toml:"interval_sec" validate:"gte=1,lte=3600"`
	EventsLimit int    `toml:"events_limit" validate:"gte=1"`
}

// Interval returns the poll interval as a duration.
func (d DaemonConfig) Interval() time.Duration {
	return time.Duration(d.IntervalSec) * time.Second
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return money.GetCurrency(strings.ToUpper(fl.Field().String())) != nil
	})
	return v
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultLength: 30,
		},
		Display: DisplayConfig{
			Currency: money.INR,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Daemon: DaemonConfig{
			Addr:        "127.0.0.1:8787",
			IntervalSec: 10,
			EventsLimit: 200,
		},
	}
}

// Validate checks field values against their validate tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mchallenge")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mchallenge")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Keys missing from the file keep their default values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save validates cfg and writes it to disk.
func Save(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetDataPath returns the store path from env var or config, in that order.
// An empty result means the caller should use its default location.
func GetDataPath(cfg Config) string {
	if p := os.Getenv(DataEnv); p != "" {
		return p
	}
	return cfg.General.DataPath
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
