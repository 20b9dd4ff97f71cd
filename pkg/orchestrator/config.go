package orchestrator

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/beaconsense/beacon-go/pkg/log"
	"github.com/beaconsense/beacon-go/pkg/region"
	"github.com/beaconsense/beacon-go/pkg/sensing"
	"github.com/google/uuid"
)

// Store persists session settings across orchestrator instances.
type Store interface {
	sensing.Store

	// LoadScanPeriods returns the saved periods; ok is false if none were saved.
	LoadScanPeriods() (p sensing.ScanPeriods, ok bool, err error)

	LoadMonitoredRegions() ([]region.Region, error)
}

// Config configures an Orchestrator.
type Config struct {
	// Logger is the optional logger for debug output.
	Logger *slog.Logger

	// EventLogger receives structured session events. Nil disables capture.
	EventLogger log.Logger

	// SessionID identifies the session in captured events. Generated when empty.
	SessionID string

	// PromptTimeout bounds how long a prompt may stay unanswered before it
	// counts as declined. Zero waits indefinitely: a dialog dismissed
	// without any system signal leaves its request outstanding until it is
	// superseded or torn down.
	PromptTimeout time.Duration

	// ForegroundScanPeriod and ForegroundBetweenScanPeriod are the initial
	// scan periods. A Store with saved periods overrides them.
	ForegroundScanPeriod        time.Duration
	ForegroundBetweenScanPeriod time.Duration

	// Store persists scan periods and monitored regions. Optional.
	Store Store

	// RestoreMonitoring re-arms the stored monitored regions after the
	// first successful bind. Requires Store.
	RestoreMonitoring bool
}

// DefaultConfig returns a Config with the engine's default scan periods.
func DefaultConfig() Config {
	return Config{
		SessionID:                   uuid.NewString(),
		ForegroundScanPeriod:        sensing.DefaultForegroundScanPeriod,
		ForegroundBetweenScanPeriod: sensing.DefaultForegroundBetweenScanPeriod,
	}
}

// Validate checks the config.
func (c *Config) Validate() error {
	if c.PromptTimeout < 0 {
		return fmt.Errorf("%w: negative prompt timeout", ErrInvalidConfig)
	}
	if err := c.scanPeriods().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.RestoreMonitoring && c.Store == nil {
		return fmt.Errorf("%w: restore monitoring requires a store", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) scanPeriods() sensing.ScanPeriods {
	return sensing.ScanPeriods{
		Foreground:        c.ForegroundScanPeriod,
		ForegroundBetween: c.ForegroundBetweenScanPeriod,
	}
}
