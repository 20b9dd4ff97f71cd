package bridge

import (
	"encoding/json"
	"errors"

	"github.com/beaconsense/beacon-go/pkg/orchestrator"
)

// Result is the answer to one call.
type Result struct {
	// Value is the success value. Meaningful only when Failure is nil and
	// NotImplemented is false.
	Value any

	// Failure is set for failed calls.
	Failure *orchestrator.Failure

	// NotImplemented is set for unknown or unsupported methods.
	NotImplemented bool
}

// Success returns a successful result carrying v.
func Success(v any) Result {
	return Result{Value: v}
}

// Error returns the result for err. ErrUnimplemented maps to
// NotImplemented.
func Error(err error) Result {
	if errors.Is(err, orchestrator.ErrUnimplemented) {
		return NotImplemented()
	}
	f := orchestrator.FailureOf(err)
	return Result{Failure: &f}
}

// NotImplemented returns the result for methods without an implementation.
func NotImplemented() Result {
	return Result{NotImplemented: true}
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Failure == nil && !r.NotImplemented
}

type resultJSON struct {
	Success        json.RawMessage       `json:"success,omitempty"`
	Error          *orchestrator.Failure `json:"error,omitempty"`
	NotImplemented bool                  `json:"notImplemented,omitempty"`
}

// MarshalJSON encodes exactly one of success, error or notImplemented.
func (r Result) MarshalJSON() ([]byte, error) {
	switch {
	case r.NotImplemented:
		return json.Marshal(resultJSON{NotImplemented: true})
	case r.Failure != nil:
		return json.Marshal(resultJSON{Error: r.Failure})
	}
	v, err := json.Marshal(r.Value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(resultJSON{Success: v})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Result{Failure: raw.Error, NotImplemented: raw.NotImplemented}
	if len(raw.Success) > 0 {
		return json.Unmarshal(raw.Success, &r.Value)
	}
	return nil
}
