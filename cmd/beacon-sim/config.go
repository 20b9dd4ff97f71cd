package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/beaconsense/beacon-go/internal/testharness/mock"
	"github.com/beaconsense/beacon-go/pkg/capability"
	"github.com/beaconsense/beacon-go/pkg/region"
)

// Config describes the simulated handset and the services around it.
type Config struct {
	// Initial handset state.
	Permission       bool   `yaml:"permission"`
	LocationService  bool   `yaml:"location_service"`
	Radio            string `yaml:"radio"`
	BroadcastCapable bool   `yaml:"broadcast_capable"`

	// AutoBind completes engine binds immediately. Otherwise use "bind ok".
	AutoBind bool `yaml:"auto_bind"`

	// AutoConfirmBroadcast confirms advertising starts immediately.
	AutoConfirmBroadcast bool `yaml:"auto_confirm_broadcast"`

	PromptTimeout     time.Duration `yaml:"prompt_timeout"`
	ScanPeriod        time.Duration `yaml:"scan_period"`
	BetweenScanPeriod time.Duration `yaml:"between_scan_period"`

	// Listen is the bridge address. Empty disables the bridge.
	Listen string `yaml:"listen"`

	// EventLog is the CBOR event log path. Empty disables it.
	EventLog string `yaml:"event_log"`

	// Database is a SQLite path for persisted session state.
	Database string `yaml:"database"`

	// StateFile is a JSON path for persisted session state.
	StateFile string `yaml:"state_file"`

	// RestoreMonitoring re-arms persisted regions after the first bind.
	RestoreMonitoring bool `yaml:"restore_monitoring"`

	LogLevel string `yaml:"log_level"`

	// Regions are named regions usable with the range and monitor commands.
	Regions []region.Region `yaml:"regions"`
}

// DefaultConfig returns a handset with services on, the radio on and no
// permission granted yet.
func DefaultConfig() Config {
	return Config{
		LocationService:      true,
		Radio:                "on",
		BroadcastCapable:     true,
		AutoBind:             true,
		AutoConfirmBroadcast: true,
		Listen:               "127.0.0.1:8765",
		LogLevel:             "info",
	}
}

// LoadConfig reads a YAML config over the defaults. An empty path returns
// the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the config.
func (c *Config) Validate() error {
	if _, err := ParseRadio(c.Radio); err != nil {
		return err
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.PromptTimeout < 0 {
		return errors.New("prompt_timeout must not be negative")
	}
	if c.ScanPeriod < 0 || c.BetweenScanPeriod < 0 {
		return errors.New("scan periods must not be negative")
	}
	if c.Database != "" && c.StateFile != "" {
		return errors.New("database and state_file are mutually exclusive")
	}
	if c.RestoreMonitoring && c.Database == "" && c.StateFile == "" {
		return errors.New("restore_monitoring requires database or state_file")
	}

	seen := make(map[string]bool, len(c.Regions))
	for i, r := range c.Regions {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("regions[%d]: %w", i, err)
		}
		if seen[r.Identifier] {
			return fmt.Errorf("regions[%d]: duplicate identifier %q", i, r.Identifier)
		}
		seen[r.Identifier] = true
	}
	return nil
}

// HandsetState returns the initial handset state.
func (c *Config) HandsetState() mock.HandsetState {
	radio, _ := ParseRadio(c.Radio)
	return mock.HandsetState{
		Permission:       c.Permission,
		LocationService:  c.LocationService,
		Radio:            radio,
		BroadcastCapable: c.BroadcastCapable,
	}
}

// ParseRadio parses on, off or absent.
func ParseRadio(s string) (capability.RadioState, error) {
	switch strings.ToLower(s) {
	case "on":
		return capability.RadioOn, nil
	case "off":
		return capability.RadioOff, nil
	case "absent", "unsupported":
		return capability.RadioUnsupported, nil
	default:
		return capability.RadioOff, fmt.Errorf("unknown radio state: %q (use: on, off, absent)", s)
	}
}

// ParseLevel parses a slog level name.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level: %q (use: debug, info, warn, error)", s)
	}
	return level, nil
}
