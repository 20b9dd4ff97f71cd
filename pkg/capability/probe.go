package capability

// Probe answers synchronous capability queries. Implementations must be
// side-effect free and safe to call at any time.
type Probe interface {
	// HasLocationPermission reports whether the location permission is granted.
	HasLocationPermission() bool

	// IsLocationServiceEnabled reports whether system location services are on.
	IsLocationServiceEnabled() bool

	// RadioPowerState reports the radio power state. Absent hardware is
	// reported as RadioUnsupported.
	RadioPowerState() RadioState

	// IsBroadcastCapable reports whether the hardware and OS can advertise,
	// independent of the current power state.
	IsBroadcastCapable() bool
}

// SafeRadioState reads the radio state and reports RadioUnsupported if the
// probe panics. Platform bindings for absent radio hardware tend to fault
// rather than report; callers never see that fault.
func SafeRadioState(p Probe) (state RadioState) {
	defer func() {
		if recover() != nil {
			state = RadioUnsupported
		}
	}()
	return p.RadioPowerState()
}

// Take probes all capabilities.
func Take(p Probe) Snapshot {
	return Snapshot{
		LocationPermission: p.HasLocationPermission(),
		LocationService:    p.IsLocationServiceEnabled(),
		Radio:              SafeRadioState(p),
	}
}
