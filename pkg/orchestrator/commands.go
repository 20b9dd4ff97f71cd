package orchestrator

import (
	"errors"
	"fmt"
	"time"

	"github.com/beaconsense/beacon-go/pkg/broadcast"
	"github.com/beaconsense/beacon-go/pkg/capability"
	"github.com/beaconsense/beacon-go/pkg/pending"
	"github.com/beaconsense/beacon-go/pkg/sensing"
)

// AuthorizationStatus reports ALLOWED when the location permission is
// granted and NOT_DETERMINED otherwise.
func (o *Orchestrator) AuthorizationStatus() (capability.AuthorizationStatus, error) {
	a, err := o.attached()
	if err != nil {
		return capability.AuthorizationNotDetermined, err
	}
	return capability.StatusFromPermission(a.probe.HasLocationPermission()), nil
}

// LocationServicesEnabled reports whether system location services are on.
func (o *Orchestrator) LocationServicesEnabled() (bool, error) {
	a, err := o.attached()
	if err != nil {
		return false, err
	}
	return a.probe.IsLocationServiceEnabled(), nil
}

// RadioPowerState reports the tri-state radio power. Absent hardware is
// RadioUnsupported, never a fault.
func (o *Orchestrator) RadioPowerState() (capability.RadioState, error) {
	a, err := o.attached()
	if err != nil {
		return capability.RadioUnsupported, err
	}
	return capability.SafeRadioState(a.probe), nil
}

// OpenLocationSettings navigates to the location settings screen.
func (o *Orchestrator) OpenLocationSettings() (bool, error) {
	o.logCommand("openLocationSettings", "")
	a, err := o.attached()
	if err != nil {
		return false, err
	}
	a.gate.OpenLocationSettings()
	return true, nil
}

// OpenApplicationSettings is not supported.
func (o *Orchestrator) OpenApplicationSettings() error {
	o.logCommand("openApplicationSettings", "")
	return ErrUnimplemented
}

// SetLocationAuthorizationTypeDefault accepts the default authorization
// type. There is only one, so it always succeeds.
func (o *Orchestrator) SetLocationAuthorizationTypeDefault() (bool, error) {
	if _, err := o.attached(); err != nil {
		return false, err
	}
	return true, nil
}

// SetScanPeriod sets the foreground scan period. It reports false when the
// engine rejects the new periods.
func (o *Orchestrator) SetScanPeriod(period time.Duration) (bool, error) {
	o.logCommand("setScanPeriod", "")
	if period <= 0 {
		return false, fmt.Errorf("%w: scan period must be positive", ErrInvalidArgument)
	}
	p := o.lifecycle.ScanPeriods()
	p.Foreground = period
	return o.applyScanPeriods(p)
}

// SetBetweenScanPeriod sets the pause between foreground scans.
func (o *Orchestrator) SetBetweenScanPeriod(period time.Duration) (bool, error) {
	o.logCommand("setBetweenScanPeriod", "")
	if period < 0 {
		return false, fmt.Errorf("%w: between scan period must not be negative", ErrInvalidArgument)
	}
	p := o.lifecycle.ScanPeriods()
	p.ForegroundBetween = period
	return o.applyScanPeriods(p)
}

func (o *Orchestrator) applyScanPeriods(p sensing.ScanPeriods) (bool, error) {
	if _, err := o.attached(); err != nil {
		return false, err
	}
	err := o.lifecycle.SetScanPeriods(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sensing.ErrInvalidScanPeriod):
		return false, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	default:
		o.logError(err, "set scan periods")
		o.warn("engine rejected scan periods", "err", err)
		return false, nil
	}
}

// StartBroadcast starts advertising cfg. The request resolves true once the
// advertiser confirms.
func (o *Orchestrator) StartBroadcast(cfg broadcast.Config) *pending.Request {
	const cmd = "startBroadcast"
	o.logCommand(cmd, pending.ClassBroadcast.String())
	a, err := o.attached()
	if err != nil {
		return o.failed(pending.ClassBroadcast, cmd, err)
	}
	return o.track(a.broadcaster.Start(cfg))
}

// StopBroadcast stops advertising.
func (o *Orchestrator) StopBroadcast() (bool, error) {
	o.logCommand("stopBroadcast", "")
	a, err := o.attached()
	if err != nil {
		return false, err
	}
	if err := a.broadcaster.Stop(); err != nil {
		return false, err
	}
	return true, nil
}

// IsBroadcasting reports whether the device is advertising.
func (o *Orchestrator) IsBroadcasting() (bool, error) {
	a, err := o.attached()
	if err != nil {
		return false, err
	}
	return a.broadcaster.IsBroadcasting(), nil
}

// IsBroadcastSupported reports whether the device can advertise.
func (o *Orchestrator) IsBroadcastSupported() (bool, error) {
	a, err := o.attached()
	if err != nil {
		return false, err
	}
	return a.broadcaster.Supported(), nil
}
