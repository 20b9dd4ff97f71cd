package capability

// Capability identifies a gate that must be satisfied before sensing can run.
type Capability uint8

const (
	// RadioPowerEnabled is the short-range radio power state.
	RadioPowerEnabled Capability = iota

	// LocationPermission is the runtime location permission.
	LocationPermission

	// LocationServiceEnabled is the system-wide location services toggle.
	LocationServiceEnabled
)

// String returns the capability name.
func (c Capability) String() string {
	switch c {
	case RadioPowerEnabled:
		return "RADIO_POWER"
	case LocationPermission:
		return "LOCATION_PERMISSION"
	case LocationServiceEnabled:
		return "LOCATION_SERVICE"
	default:
		return "UNKNOWN"
	}
}

// RadioState is the power state of the short-range radio.
type RadioState uint8

const (
	// RadioOff indicates the radio is present but switched off.
	RadioOff RadioState = iota

	// RadioOn indicates the radio is present and powered.
	RadioOn

	// RadioUnsupported indicates the radio hardware is absent.
	RadioUnsupported
)

// String returns the radio state name.
func (s RadioState) String() string {
	switch s {
	case RadioOff:
		return "OFF"
	case RadioOn:
		return "ON"
	case RadioUnsupported:
		return "UNSUPPORTED"
	default:
		return "UNKNOWN"
	}
}

// Enabled collapses the tri-state value for gating: only RadioOn counts.
func (s RadioState) Enabled() bool {
	return s == RadioOn
}

// MarshalText implements encoding.TextMarshaler.
func (s RadioState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AuthorizationStatus is the location authorization reported to callers.
type AuthorizationStatus uint8

const (
	// AuthorizationNotDetermined means permission is not currently granted.
	AuthorizationNotDetermined AuthorizationStatus = iota

	// AuthorizationAllowed means permission is granted.
	AuthorizationAllowed

	// AuthorizationDenied means the user answered a prompt negatively.
	// It is only ever pushed as the outcome of a prompt, never probed.
	AuthorizationDenied
)

// String returns the authorization status name.
func (a AuthorizationStatus) String() string {
	switch a {
	case AuthorizationNotDetermined:
		return "NOT_DETERMINED"
	case AuthorizationAllowed:
		return "ALLOWED"
	case AuthorizationDenied:
		return "DENIED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a AuthorizationStatus) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// StatusFromPermission maps a probed permission to the caller-facing status.
func StatusFromPermission(granted bool) AuthorizationStatus {
	if granted {
		return AuthorizationAllowed
	}
	return AuthorizationNotDetermined
}

// StatusFromAnswer maps a permission prompt answer to the pushed status.
func StatusFromAnswer(granted bool) AuthorizationStatus {
	if granted {
		return AuthorizationAllowed
	}
	return AuthorizationDenied
}

// Snapshot is the probed state of all capabilities at one instant.
type Snapshot struct {
	LocationPermission bool
	LocationService    bool
	Radio              RadioState
}

// Has reports whether a single capability is satisfied.
func (s Snapshot) Has(c Capability) bool {
	switch c {
	case RadioPowerEnabled:
		return s.Radio.Enabled()
	case LocationPermission:
		return s.LocationPermission
	case LocationServiceEnabled:
		return s.LocationService
	default:
		return false
	}
}

// Order is the fixed order in which missing capabilities are requested.
var Order = [...]Capability{RadioPowerEnabled, LocationPermission, LocationServiceEnabled}

// Missing returns the unsatisfied capabilities in request order.
func (s Snapshot) Missing() []Capability {
	var missing []Capability
	for _, c := range Order {
		if !s.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Satisfied reports whether every capability is satisfied.
func (s Snapshot) Satisfied() bool {
	return len(s.Missing()) == 0
}
