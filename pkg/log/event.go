package log

import "time"

// Event represents a session event. CBOR encoding uses integer keys for
// compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the orchestrator session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// RequestID correlates events belonging to one pending request.
	RequestID uint64 `cbor:"4,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Command    *CommandEvent    `cbor:"10,keyasint,omitempty"`
	Step       *StepEvent       `cbor:"11,keyasint,omitempty"`
	Prompt     *PromptEvent     `cbor:"12,keyasint,omitempty"`
	Request    *RequestEvent    `cbor:"13,keyasint,omitempty"`
	Engine     *EngineEvent     `cbor:"14,keyasint,omitempty"`
	Capability *CapabilityEvent `cbor:"15,keyasint,omitempty"`
	Error      *ErrorEventData  `cbor:"16,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryCommand indicates a caller command was issued.
	CategoryCommand Category = 0
	// CategoryStep indicates the state machine chose its next step.
	CategoryStep Category = 1
	// CategoryPrompt indicates a capability prompt transition.
	CategoryPrompt Category = 2
	// CategoryRequest indicates a pending request transition.
	CategoryRequest Category = 3
	// CategoryEngine indicates a sensing engine operation or state change.
	CategoryEngine Category = 4
	// CategoryCapability indicates a capability push to observers.
	CategoryCapability Category = 5
	// CategoryError indicates an error event.
	CategoryError Category = 6
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCommand:
		return "COMMAND"
	case CategoryStep:
		return "STEP"
	case CategoryPrompt:
		return "PROMPT"
	case CategoryRequest:
		return "REQUEST"
	case CategoryEngine:
		return "ENGINE"
	case CategoryCapability:
		return "CAPABILITY"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name as printed by String.
func ParseCategory(s string) (Category, bool) {
	for c := CategoryCommand; c <= CategoryError; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// CommandEvent captures a caller command.
type CommandEvent struct {
	// Name is the command name (e.g. "initializeAndCheck").
	Name string `cbor:"1,keyasint"`

	// Class is the pending request class, if the command created one.
	Class string `cbor:"2,keyasint,omitempty"`
}

// StepEvent captures a decision of the capability state machine.
type StepEvent struct {
	// Step is the chosen next step.
	Step string `cbor:"1,keyasint"`

	// Probed capability state at decision time.
	LocationPermission bool   `cbor:"2,keyasint"`
	LocationService    bool   `cbor:"3,keyasint"`
	Radio              string `cbor:"4,keyasint"`
	Bound              bool   `cbor:"5,keyasint"`
}

// PromptEvent captures a capability prompt transition.
type PromptEvent struct {
	// PromptID identifies the prompt within the session.
	PromptID uint64 `cbor:"1,keyasint"`

	// Prompt is the prompt kind.
	Prompt string `cbor:"2,keyasint"`

	// Outcome is the transition (ISSUED, JOINED, ANSWERED, ...).
	Outcome string `cbor:"3,keyasint"`

	// Value is the answer for settled prompts.
	Value bool `cbor:"4,keyasint,omitempty"`
}

// RequestOutcome is a pending request transition.
type RequestOutcome uint8

const (
	// RequestCreated indicates a request became outstanding.
	RequestCreated RequestOutcome = 0
	// RequestResolved indicates a request settled successfully.
	RequestResolved RequestOutcome = 1
	// RequestFailed indicates a request settled with an error.
	RequestFailed RequestOutcome = 2
	// RequestSuperseded indicates a request was pre-empted by a newer one.
	RequestSuperseded RequestOutcome = 3
)

// String returns the outcome name.
func (o RequestOutcome) String() string {
	switch o {
	case RequestCreated:
		return "CREATED"
	case RequestResolved:
		return "RESOLVED"
	case RequestFailed:
		return "FAILED"
	case RequestSuperseded:
		return "SUPERSEDED"
	default:
		return "UNKNOWN"
	}
}

// RequestEvent captures a pending request transition.
type RequestEvent struct {
	Class   string         `cbor:"1,keyasint"`
	Command string         `cbor:"2,keyasint"`
	Outcome RequestOutcome `cbor:"3,keyasint"`
	Value   bool           `cbor:"4,keyasint,omitempty"`

	// Kind and Message describe a failure.
	Kind    string `cbor:"5,keyasint,omitempty"`
	Message string `cbor:"6,keyasint,omitempty"`
}

// EngineAction identifies what happened at the sensing engine.
type EngineAction uint8

const (
	// EngineBindState indicates a bind state change.
	EngineBindState EngineAction = 0
	// EngineRangingStarted indicates ranging started for a region.
	EngineRangingStarted EngineAction = 1
	// EngineRangingStopped indicates ranging stopped for a region.
	EngineRangingStopped EngineAction = 2
	// EngineMonitoringStarted indicates monitoring started for a region.
	EngineMonitoringStarted EngineAction = 3
	// EngineMonitoringStopped indicates monitoring stopped for a region.
	EngineMonitoringStopped EngineAction = 4
	// EngineScanPeriods indicates scan periods were applied.
	EngineScanPeriods EngineAction = 5
	// EngineAdvertising indicates an advertising state change.
	EngineAdvertising EngineAction = 6
)

// String returns the action name.
func (a EngineAction) String() string {
	switch a {
	case EngineBindState:
		return "BIND_STATE"
	case EngineRangingStarted:
		return "RANGING_STARTED"
	case EngineRangingStopped:
		return "RANGING_STOPPED"
	case EngineMonitoringStarted:
		return "MONITORING_STARTED"
	case EngineMonitoringStopped:
		return "MONITORING_STOPPED"
	case EngineScanPeriods:
		return "SCAN_PERIODS"
	case EngineAdvertising:
		return "ADVERTISING"
	default:
		return "UNKNOWN"
	}
}

// EngineEvent captures a sensing engine operation.
type EngineEvent struct {
	Action EngineAction `cbor:"1,keyasint"`

	// OldState and NewState are set for state changes.
	OldState string `cbor:"2,keyasint,omitempty"`
	NewState string `cbor:"3,keyasint,omitempty"`

	// Region is the affected region, if any.
	Region string `cbor:"4,keyasint,omitempty"`

	// Reason for the change (if available).
	Reason string `cbor:"5,keyasint,omitempty"`
}

// CapabilityEvent captures a push to an observer channel.
type CapabilityEvent struct {
	// Channel is the observer channel name.
	Channel string `cbor:"1,keyasint"`

	// Value is the pushed value.
	Value string `cbor:"2,keyasint"`

	// Delivered reports whether a subscriber received it.
	Delivered bool `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors.
type ErrorEventData struct {
	// Kind is the failure kind (if classified).
	Kind string `cbor:"1,keyasint,omitempty"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}

// TypeLabel returns a short label for the populated payload.
func (e Event) TypeLabel() string {
	switch {
	case e.Command != nil:
		return e.Command.Name
	case e.Step != nil:
		return e.Step.Step
	case e.Prompt != nil:
		return e.Prompt.Prompt + " " + e.Prompt.Outcome
	case e.Request != nil:
		return e.Request.Command + " " + e.Request.Outcome.String()
	case e.Engine != nil:
		return e.Engine.Action.String()
	case e.Capability != nil:
		return e.Capability.Channel
	case e.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}
