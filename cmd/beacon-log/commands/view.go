// Package commands implements the beacon-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/beaconsense/beacon-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	SessionID string
	RequestID uint64
	Category  *log.Category
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{SessionID: f.SessionID, RequestID: f.RequestID, Category: f.Category}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session:id] #request CATEGORY label
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	req := "-"
	if event.RequestID != 0 {
		req = fmt.Sprintf("#%d", event.RequestID)
	}
	fmt.Fprintf(w, "%s [session:%s] %-4s %s %s\n",
		ts, shortenID(event.SessionID), req, event.Category.String(), event.TypeLabel())

	switch {
	case event.Command != nil:
		if event.Command.Class != "" {
			fmt.Fprintf(w, "  Class: %s\n", event.Command.Class)
		}
	case event.Step != nil:
		formatStepDetails(w, event.Step)
	case event.Prompt != nil:
		fmt.Fprintf(w, "  Prompt: %d\n", event.Prompt.PromptID)
		if event.Prompt.Outcome != "ISSUED" {
			fmt.Fprintf(w, "  Value: %t\n", event.Prompt.Value)
		}
	case event.Request != nil:
		formatRequestDetails(w, event.Request)
	case event.Engine != nil:
		formatEngineDetails(w, event.Engine)
	case event.Capability != nil:
		fmt.Fprintf(w, "  Value: %s", event.Capability.Value)
		if !event.Capability.Delivered {
			fmt.Fprint(w, " (no subscriber)")
		}
		fmt.Fprintln(w)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenID returns the first 8 characters of an identifier.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatStepDetails(w io.Writer, s *log.StepEvent) {
	fmt.Fprintf(w, "  Radio: %s  Permission: %t  LocationService: %t  Bound: %t\n",
		s.Radio, s.LocationPermission, s.LocationService, s.Bound)
}

func formatRequestDetails(w io.Writer, r *log.RequestEvent) {
	fmt.Fprintf(w, "  Class: %s\n", r.Class)
	switch r.Outcome {
	case log.RequestResolved:
		fmt.Fprintf(w, "  Value: %t\n", r.Value)
	case log.RequestFailed, log.RequestSuperseded:
		fmt.Fprintf(w, "  Kind: %s\n", r.Kind)
		if r.Message != "" {
			fmt.Fprintf(w, "  Message: %s\n", r.Message)
		}
	}
}

func formatEngineDetails(w io.Writer, e *log.EngineEvent) {
	if e.NewState != "" {
		if e.OldState != "" {
			fmt.Fprintf(w, "  %s -> %s\n", e.OldState, e.NewState)
		} else {
			fmt.Fprintf(w, "  -> %s\n", e.NewState)
		}
	}
	if e.Region != "" {
		fmt.Fprintf(w, "  Region: %s\n", e.Region)
	}
	if e.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", e.Reason)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	if err.Kind != "" {
		fmt.Fprintf(w, "  Kind: %s\n", err.Kind)
	}
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be command, step, prompt, request, engine, capability, or error)", s)
	}
	return c, nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
