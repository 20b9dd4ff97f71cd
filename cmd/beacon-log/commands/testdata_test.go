package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/beaconsense/beacon-go/pkg/log"
)

var testTime = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.blog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

// sessionEvents is a small initializeAndCheck run: command, one step, a
// granted permission prompt, and a resolved request.
func sessionEvents() []log.Event {
	const session = "3f2a9c1e-0000-4000-8000-000000000001"
	return []log.Event{
		{
			Timestamp: testTime,
			SessionID: session,
			Category:  log.CategoryCommand,
			Command:   &log.CommandEvent{Name: "initializeAndCheck", Class: "GENERAL"},
		},
		{
			Timestamp: testTime.Add(time.Millisecond),
			SessionID: session,
			Category:  log.CategoryRequest,
			RequestID: 1,
			Request:   &log.RequestEvent{Class: "GENERAL", Command: "initializeAndCheck", Outcome: log.RequestCreated},
		},
		{
			Timestamp: testTime.Add(2 * time.Millisecond),
			SessionID: session,
			Category:  log.CategoryStep,
			RequestID: 1,
			Step:      &log.StepEvent{Step: "REQUEST_PERMISSION", LocationService: true, Radio: "ON"},
		},
		{
			Timestamp: testTime.Add(3 * time.Millisecond),
			SessionID: session,
			Category:  log.CategoryPrompt,
			Prompt:    &log.PromptEvent{PromptID: 1, Prompt: "PERMISSION", Outcome: "ISSUED"},
		},
		{
			Timestamp: testTime.Add(time.Second),
			SessionID: session,
			Category:  log.CategoryPrompt,
			Prompt:    &log.PromptEvent{PromptID: 1, Prompt: "PERMISSION", Outcome: "ANSWERED", Value: true},
		},
		{
			Timestamp: testTime.Add(2 * time.Second),
			SessionID: session,
			Category:  log.CategoryRequest,
			RequestID: 1,
			Request:   &log.RequestEvent{Class: "GENERAL", Command: "initializeAndCheck", Outcome: log.RequestResolved, Value: true},
		},
	}
}

func failureEvents() []log.Event {
	const session = "77b01d44-0000-4000-8000-000000000002"
	return []log.Event{
		{
			Timestamp: testTime.Add(time.Minute),
			SessionID: session,
			Category:  log.CategoryRequest,
			RequestID: 2,
			Request: &log.RequestEvent{
				Class:   "GENERAL",
				Command: "initialize",
				Outcome: log.RequestFailed,
				Kind:    "PermissionDenied",
				Message: "location permission denied",
			},
		},
		{
			Timestamp: testTime.Add(time.Minute + time.Second),
			SessionID: session,
			Category:  log.CategoryError,
			Error:     &log.ErrorEventData{Kind: "EngineFailure", Message: "scan rejected", Context: "set scan periods"},
		},
	}
}
