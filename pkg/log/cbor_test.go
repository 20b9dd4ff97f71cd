package log

import (
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
)

func TestEventCBORRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 30, 0, 123456789, time.UTC)
	original := Event{
		Timestamp: ts,
		SessionID: "sess-1",
		Category:  CategoryRequest,
		RequestID: 7,
		Request: &RequestEvent{
			Class:   "GENERAL",
			Command: "initializeAndCheck",
			Outcome: RequestFailed,
			Kind:    "PermissionDenied",
			Message: "location permission denied",
		},
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !decoded.Timestamp.Equal(ts) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, ts)
	}
	if decoded.SessionID != "sess-1" {
		t.Errorf("SessionID: got %q, want %q", decoded.SessionID, "sess-1")
	}
	if decoded.RequestID != 7 {
		t.Errorf("RequestID: got %d, want 7", decoded.RequestID)
	}
	if decoded.Request == nil {
		t.Fatal("Request payload missing")
	}
	if decoded.Request.Outcome != RequestFailed {
		t.Errorf("Outcome: got %v, want %v", decoded.Request.Outcome, RequestFailed)
	}
	if decoded.Request.Kind != "PermissionDenied" {
		t.Errorf("Kind: got %q", decoded.Request.Kind)
	}
}

func TestStepEventCBORRoundTrip(t *testing.T) {
	original := Event{
		Timestamp: time.Now(),
		SessionID: "sess-2",
		Category:  CategoryStep,
		Step: &StepEvent{
			Step:               "REQUEST_PERMISSION",
			LocationPermission: false,
			LocationService:    true,
			Radio:              "ON",
			Bound:              false,
		},
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if decoded.Step == nil {
		t.Fatal("Step payload missing")
	}
	if *decoded.Step != *original.Step {
		t.Errorf("Step: got %+v, want %+v", *decoded.Step, *original.Step)
	}
	if decoded.Request != nil || decoded.Prompt != nil {
		t.Error("unexpected payload decoded")
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		c    Category
		want string
	}{
		{CategoryCommand, "COMMAND"},
		{CategoryStep, "STEP"},
		{CategoryPrompt, "PROMPT"},
		{CategoryRequest, "REQUEST"},
		{CategoryEngine, "ENGINE"},
		{CategoryCapability, "CAPABILITY"},
		{CategoryError, "ERROR"},
		{Category(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
		if tt.want == "UNKNOWN" {
			continue
		}
		parsed, ok := ParseCategory(tt.want)
		if !ok || parsed != tt.c {
			t.Errorf("ParseCategory(%q) = %v, %v", tt.want, parsed, ok)
		}
	}
	if _, ok := ParseCategory("nope"); ok {
		t.Error("ParseCategory accepted unknown name")
	}
}

func TestEventCBORUsesIntegerKeys(t *testing.T) {
	data, err := EncodeEvent(Event{
		Timestamp: time.Now(),
		SessionID: "sess",
		Category:  CategoryCommand,
		Command:   &CommandEvent{Name: "close"},
	})
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	var raw map[any]any
	if err := cbor.Unmarshal(data, &raw); err != nil {
		t.Fatalf("raw unmarshal failed: %v", err)
	}
	for k := range raw {
		if _, ok := k.(uint64); !ok {
			t.Errorf("key %v (%T) is not an integer", k, k)
		}
	}
	if _, ok := raw[uint64(4)]; ok {
		t.Error("zero RequestID should be omitted")
	}
}

func TestEventTypeLabel(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Event{Command: &CommandEvent{Name: "close"}}, "close"},
		{Event{Step: &StepEvent{Step: "BIND"}}, "BIND"},
		{Event{Prompt: &PromptEvent{Prompt: "RADIO_POWER", Outcome: "ANSWERED"}}, "RADIO_POWER ANSWERED"},
		{Event{Request: &RequestEvent{Command: "initialize", Outcome: RequestResolved}}, "initialize RESOLVED"},
		{Event{Engine: &EngineEvent{Action: EngineRangingStarted}}, "RANGING_STARTED"},
		{Event{Capability: &CapabilityEvent{Channel: "radio_state"}}, "radio_state"},
		{Event{Error: &ErrorEventData{Message: "x"}}, "Error"},
		{Event{}, "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.event.TypeLabel(); got != tt.want {
			t.Errorf("TypeLabel() = %q, want %q", got, tt.want)
		}
	}
}
