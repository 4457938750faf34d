package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
	if Exists() {
		t.Fatal("Exists() = true with no file written")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.DefaultLength = 90
	cfg.Display.Currency = "USD"
	cfg.Appearance.Theme = "tokyo-night"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config perm = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("got %+v, want %+v", got, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "mchallenge", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[display]\ncurrency = \"EUR\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.Currency != "EUR" {
		t.Errorf("currency = %q, want EUR", cfg.Display.Currency)
	}
	if cfg.General.DefaultLength != 30 || cfg.Daemon.Interval() != 10*time.Second {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_ParseError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "mchallenge", "config.toml")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	_ = os.WriteFile(path, []byte("[general\n"), 0o600)

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Fatalf("err = %v, want parsing config error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"length 60", func(c *Config) { c.General.DefaultLength = 60 }, true},
		{"length 45", func(c *Config) { c.General.DefaultLength = 45 }, false},
		{"lowercase currency", func(c *Config) { c.Display.Currency = "usd" }, true},
		{"unknown currency", func(c *Config) { c.Display.Currency = "XXZ" }, false},
		{"empty currency", func(c *Config) { c.Display.Currency = "" }, false},
		{"unknown theme", func(c *Config) { c.Appearance.Theme = "neon" }, false},
		{"bad addr", func(c *Config) { c.Daemon.Addr = "nope" }, false},
		{"zero interval", func(c *Config) { c.Daemon.IntervalSec = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !tt.ok && err == nil {
				t.Fatal("Validate() = nil, want error")
			}
		})
	}
}

func TestGetDataPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.DataPath = "/from/config.db"

	t.Setenv(DataEnv, "")
	if got := GetDataPath(cfg); got != "/from/config.db" {
		t.Errorf("got %q, want config path", got)
	}

	t.Setenv(DataEnv, "/from/env.db")
	if got := GetDataPath(cfg); got != "/from/env.db" {
		t.Errorf("got %q, want env path", got)
	}
}
