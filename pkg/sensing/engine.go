package sensing

import (
	"errors"
	"fmt"
	"time"

	"github.com/beaconsense/beacon-go/pkg/region"
)

// Engine is the beacon sensing engine.
//
// Bind is asynchronous: onBound is called exactly once, possibly on another
// goroutine, with nil once the engine service is attached or with the bind
// error. Start and stop calls are only valid while bound.
type Engine interface {
	Bind(onBound func(err error))
	Unbind()

	// SetNotifier installs the receiver of engine callbacks.
	SetNotifier(n Notifier)

	StartRanging(r region.Region) error
	StopRanging(r region.Region) error
	StartMonitoring(r region.Region) error
	StopMonitoring(r region.Region) error

	SetScanPeriods(p ScanPeriods) error
}

// Notifier receives engine callbacks.
type Notifier interface {
	DidRangeBeacons(r region.Region, beacons []region.Beacon)
	DidEnterRegion(r region.Region)
	DidExitRegion(r region.Region)
	DidDetermineState(r region.Region, state region.State)

	// ServiceDisconnected reports that the engine service went away.
	ServiceDisconnected()
}

// ScanPeriods are the foreground scan duty cycle settings.
type ScanPeriods struct {
	// Foreground is the length of one scan cycle.
	Foreground time.Duration `json:"foreground" yaml:"foreground"`

	// ForegroundBetween is the pause between scan cycles.
	ForegroundBetween time.Duration `json:"foreground_between" yaml:"foreground_between"`
}

// Default scan periods of the engine.
const (
	DefaultForegroundScanPeriod        = 1100 * time.Millisecond
	DefaultForegroundBetweenScanPeriod = 0
)

// DefaultScanPeriods returns the engine defaults.
func DefaultScanPeriods() ScanPeriods {
	return ScanPeriods{
		Foreground:        DefaultForegroundScanPeriod,
		ForegroundBetween: DefaultForegroundBetweenScanPeriod,
	}
}

// ErrInvalidScanPeriod is returned for nonsensical scan periods.
var ErrInvalidScanPeriod = errors.New("invalid scan period")

// Validate checks the scan periods.
func (p ScanPeriods) Validate() error {
	if p.Foreground <= 0 {
		return fmt.Errorf("%w: foreground period must be positive, got %v", ErrInvalidScanPeriod, p.Foreground)
	}
	if p.ForegroundBetween < 0 {
		return fmt.Errorf("%w: between period must not be negative, got %v", ErrInvalidScanPeriod, p.ForegroundBetween)
	}
	return nil
}
