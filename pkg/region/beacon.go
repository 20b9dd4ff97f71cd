package region

import "github.com/google/uuid"

// Proximity is the coarse distance bucket reported by the sensing engine.
type Proximity uint8

const (
	ProximityUnknown Proximity = iota
	ProximityImmediate
	ProximityNear
	ProximityFar
)

// String returns the proximity name.
func (p Proximity) String() string {
	switch p {
	case ProximityImmediate:
		return "immediate"
	case ProximityNear:
		return "near"
	case ProximityFar:
		return "far"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Proximity) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Beacon is one detected beacon as reported by the sensing engine. Decoding
// and distance estimation are the engine's concern; the values are carried
// through unchanged.
type Beacon struct {
	ProximityUUID uuid.UUID `json:"proximityUUID"`
	Major         uint16    `json:"major"`
	Minor         uint16    `json:"minor"`
	RSSI          int       `json:"rssi"`
	TxPower       int       `json:"txPower"`
	Accuracy      float64   `json:"accuracy"`
	Proximity     Proximity `json:"proximity"`
	MacAddress    string    `json:"macAddress,omitempty"`
}

// RangingResult is the set of beacons detected for a region in one scan cycle.
type RangingResult struct {
	Region  Region   `json:"region"`
	Beacons []Beacon `json:"beacons"`
}

// Transition is a monitoring event type.
type Transition uint8

const (
	// DidEnter is reported when the device enters a region.
	DidEnter Transition = iota

	// DidExit is reported when the device leaves a region.
	DidExit

	// DidDetermineState is reported when the initial state has been determined.
	DidDetermineState
)

// String returns the transition name.
func (t Transition) String() string {
	switch t {
	case DidEnter:
		return "didEnterRegion"
	case DidExit:
		return "didExitRegion"
	case DidDetermineState:
		return "didDetermineStateForRegion"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Transition) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// State is the inside/outside state of a monitored region.
type State uint8

const (
	StateUnknown State = iota
	StateInside
	StateOutside
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInside:
		return "INSIDE"
	case StateOutside:
		return "OUTSIDE"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MonitoringEvent is a region transition pushed by the sensing engine.
type MonitoringEvent struct {
	Transition Transition `json:"event"`
	Region     Region     `json:"region"`
	State      State      `json:"state,omitempty"`
}
