package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/beaconsense/beacon-go/pkg/log"
)

func TestCollectStats(t *testing.T) {
	path := createTestLogFile(t, append(sessionEvents(), failureEvents()...))

	stats, err := collectStats(path)
	if err != nil {
		t.Fatalf("collectStats() error = %v", err)
	}

	if stats.TotalEvents != 8 {
		t.Errorf("TotalEvents = %d, want 8", stats.TotalEvents)
	}
	if got := stats.EventsByCategory[log.CategoryRequest]; got != 3 {
		t.Errorf("request events = %d, want 3", got)
	}
	if got := stats.Requests[log.RequestFailed]; got != 1 {
		t.Errorf("failed requests = %d, want 1", got)
	}
	if got := stats.FailureKinds["PermissionDenied"]; got != 1 {
		t.Errorf("PermissionDenied = %d, want 1", got)
	}
	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}
	if len(stats.Sessions) != 2 {
		t.Fatalf("Sessions = %d, want 2", len(stats.Sessions))
	}

	s := stats.Sessions["3f2a9c1e-0000-4000-8000-000000000001"]
	if s == nil {
		t.Fatal("first session missing")
	}
	if s.Commands != 1 || s.Prompts != 1 || s.Requests != 1 {
		t.Errorf("session counts = %d/%d/%d, want 1/1/1", s.Commands, s.Prompts, s.Requests)
	}
	if d := s.LastSeen.Sub(s.FirstSeen); d != 2*time.Second {
		t.Errorf("session duration = %v, want 2s", d)
	}
	if !stats.TimeRange.Start.Equal(testTime) {
		t.Errorf("TimeRange.Start = %v, want %v", stats.TimeRange.Start, testTime)
	}
}

func TestRunStats(t *testing.T) {
	path := createTestLogFile(t, append(sessionEvents(), failureEvents()...))

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Total Events: 8",
		"PROMPT:",
		"FAILED:",
		"PermissionDenied:",
		"Sessions: 2",
		"[3f2a9c1e]",
		"Errors: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunStatsEmpty(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Total Events: 0") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "Time Range") {
		t.Error("empty log should not print a time range")
	}
}
