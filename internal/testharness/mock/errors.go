package mock

import "errors"

// Mock package errors.
var (
	// ErrNothingPending is returned when answering a prompt or bind that was never issued.
	ErrNothingPending = errors.New("nothing pending")

	// ErrNotBound is returned by engine operations issued before a bind completed.
	ErrNotBound = errors.New("engine not bound")

	// ErrRejected is returned when the simulated engine refuses a setting.
	ErrRejected = errors.New("rejected by engine")

	// ErrUnknownRegion is returned when emitting for a region the engine does not watch.
	ErrUnknownRegion = errors.New("region not watched by engine")
)
