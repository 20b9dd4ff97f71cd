package orchestrator

import (
	"fmt"

	"github.com/beaconsense/beacon-go/pkg/capability"
)

// Step is the next action of the capability state machine.
type Step uint8

const (
	// StepRequestRadioPower prompts the user to switch the radio on.
	StepRequestRadioPower Step = iota

	// StepRadioUnsupported ends the request: there is no radio to switch on.
	StepRadioUnsupported

	// StepRequestPermission shows the location permission dialog.
	StepRequestPermission

	// StepOpenLocationSettings navigates to the location settings screen.
	StepOpenLocationSettings

	// StepBind attaches to the sensing engine.
	StepBind

	// StepSatisfied resolves the request successfully.
	StepSatisfied
)

// String returns the step name.
func (s Step) String() string {
	switch s {
	case StepRequestRadioPower:
		return "REQUEST_RADIO_POWER"
	case StepRadioUnsupported:
		return "RADIO_UNSUPPORTED"
	case StepRequestPermission:
		return "REQUEST_PERMISSION"
	case StepOpenLocationSettings:
		return "OPEN_LOCATION_SETTINGS"
	case StepBind:
		return "BIND"
	case StepSatisfied:
		return "SATISFIED"
	default:
		return "UNKNOWN"
	}
}

// prompts reports whether the step waits on the user.
func (s Step) prompts() bool {
	return s == StepRequestRadioPower || s == StepRequestPermission || s == StepOpenLocationSettings
}

// NextStep derives the next action from probed capabilities and the bind
// state. It is the whole sequencing policy: fixed order radio power,
// permission, location service, bind.
func NextStep(s capability.Snapshot, bound bool) Step {
	switch {
	case s.Radio == capability.RadioUnsupported:
		return StepRadioUnsupported
	case !s.Radio.Enabled():
		return StepRequestRadioPower
	case !s.LocationPermission:
		return StepRequestPermission
	case !s.LocationService:
		return StepOpenLocationSettings
	case !bound:
		return StepBind
	default:
		return StepSatisfied
	}
}

// failureFor is the error a request fails with when re-evaluation lands on
// the prompt step that was just answered.
func failureFor(s Step) error {
	switch s {
	case StepRequestPermission:
		return ErrPermissionDenied
	case StepRequestRadioPower:
		return fmt.Errorf("%w: radio power is off", ErrServiceDisabled)
	default:
		return fmt.Errorf("%w: location services are off", ErrServiceDisabled)
	}
}
