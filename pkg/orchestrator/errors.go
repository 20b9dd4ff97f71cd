package orchestrator

import (
	"errors"
	"fmt"

	"github.com/beaconsense/beacon-go/pkg/broadcast"
	"github.com/beaconsense/beacon-go/pkg/pending"
	"github.com/beaconsense/beacon-go/pkg/region"
	"github.com/beaconsense/beacon-go/pkg/sensing"
)

// Orchestrator errors.
var (
	ErrNotAttached           = errors.New("host not attached")
	ErrPermissionDenied      = errors.New("location permission denied")
	ErrServiceDisabled       = errors.New("required service disabled")
	ErrCapabilityUnsupported = errors.New("radio hardware not available")
	ErrEngineBindFailed      = errors.New("sensing engine bind failed")
	ErrUnimplemented         = errors.New("not implemented on this platform")
	ErrTornDown              = errors.New("session torn down")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrInvalidConfig         = errors.New("invalid orchestrator config")
)

// Kind classifies a failure for callers.
type Kind uint8

const (
	KindEngineFailure Kind = iota
	KindNotAttached
	KindPermissionDenied
	KindServiceDisabled
	KindCapabilityUnsupported
	KindEngineBindFailed
	KindUnimplemented
	KindSuperseded
	KindTornDown
	KindInvalidArgument
)

// String returns the kind name used on the wire.
func (k Kind) String() string {
	switch k {
	case KindEngineFailure:
		return "EngineFailure"
	case KindNotAttached:
		return "NotAttached"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindServiceDisabled:
		return "ServiceDisabled"
	case KindCapabilityUnsupported:
		return "CapabilityUnsupported"
	case KindEngineBindFailed:
		return "EngineBindFailed"
	case KindUnimplemented:
		return "Unimplemented"
	case KindSuperseded:
		return "Superseded"
	case KindTornDown:
		return "TornDown"
	case KindInvalidArgument:
		return "InvalidArgument"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for c := KindEngineFailure; c <= KindInvalidArgument; c++ {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown failure kind %q", text)
}

// kindTable maps sentinel errors to kinds. Earlier entries win.
var kindTable = []struct {
	err  error
	kind Kind
}{
	{ErrNotAttached, KindNotAttached},
	{ErrPermissionDenied, KindPermissionDenied},
	{ErrServiceDisabled, KindServiceDisabled},
	{ErrCapabilityUnsupported, KindCapabilityUnsupported},
	{broadcast.ErrUnsupported, KindCapabilityUnsupported},
	{ErrEngineBindFailed, KindEngineBindFailed},
	{sensing.ErrNotBound, KindEngineBindFailed},
	{ErrUnimplemented, KindUnimplemented},
	{pending.ErrSuperseded, KindSuperseded},
	{ErrTornDown, KindTornDown},
	{ErrInvalidArgument, KindInvalidArgument},
	{region.ErrInvalidArgument, KindInvalidArgument},
	{region.ErrMissingIdentifier, KindInvalidArgument},
	{region.ErrInvalidUUID, KindInvalidArgument},
	{region.ErrMajorWithoutUUID, KindInvalidArgument},
	{region.ErrMinorWithoutMajor, KindInvalidArgument},
	{broadcast.ErrMissingUUID, KindInvalidArgument},
	{broadcast.ErrInvalidConfig, KindInvalidArgument},
	{sensing.ErrInvalidScanPeriod, KindInvalidArgument},
}

// KindOf classifies err. Unrecognised errors are KindEngineFailure.
func KindOf(err error) Kind {
	for _, e := range kindTable {
		if errors.Is(err, e.err) {
			return e.kind
		}
	}
	return KindEngineFailure
}

// Failure is the structured form of an error reported to callers.
type Failure struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// FailureOf converts err to its structured form.
func FailureOf(err error) Failure {
	return Failure{Kind: KindOf(err), Message: err.Error()}
}

// Error implements error.
func (f Failure) Error() string {
	return f.Kind.String() + ": " + f.Message
}
