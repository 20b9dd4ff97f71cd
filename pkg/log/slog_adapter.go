package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes session events to an slog.Logger.
// Useful for development when you want to see session events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("category", event.Category.String()),
	}
	if event.RequestID != 0 {
		attrs = append(attrs, slog.Uint64("request_id", event.RequestID))
	}

	switch {
	case event.Command != nil:
		attrs = append(attrs, slog.String("command", event.Command.Name))
		if event.Command.Class != "" {
			attrs = append(attrs, slog.String("class", event.Command.Class))
		}
	case event.Step != nil:
		attrs = append(attrs,
			slog.String("step", event.Step.Step),
			slog.Bool("permission", event.Step.LocationPermission),
			slog.Bool("location_service", event.Step.LocationService),
			slog.String("radio", event.Step.Radio),
			slog.Bool("bound", event.Step.Bound),
		)
	case event.Prompt != nil:
		attrs = append(attrs,
			slog.Uint64("prompt_id", event.Prompt.PromptID),
			slog.String("prompt", event.Prompt.Prompt),
			slog.String("outcome", event.Prompt.Outcome),
			slog.Bool("value", event.Prompt.Value),
		)
	case event.Request != nil:
		attrs = append(attrs,
			slog.String("class", event.Request.Class),
			slog.String("command", event.Request.Command),
			slog.String("outcome", event.Request.Outcome.String()),
		)
		if event.Request.Outcome == RequestResolved {
			attrs = append(attrs, slog.Bool("value", event.Request.Value))
		}
		if event.Request.Kind != "" {
			attrs = append(attrs,
				slog.String("kind", event.Request.Kind),
				slog.String("message", event.Request.Message),
			)
		}
	case event.Engine != nil:
		attrs = append(attrs, slog.String("action", event.Engine.Action.String()))
		if event.Engine.NewState != "" {
			attrs = append(attrs,
				slog.String("old_state", event.Engine.OldState),
				slog.String("new_state", event.Engine.NewState),
			)
		}
		if event.Engine.Region != "" {
			attrs = append(attrs, slog.String("region", event.Engine.Region))
		}
		if event.Engine.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Engine.Reason))
		}
	case event.Capability != nil:
		attrs = append(attrs,
			slog.String("channel", event.Capability.Channel),
			slog.String("value", event.Capability.Value),
			slog.Bool("delivered", event.Capability.Delivered),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_kind", event.Error.Kind),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "session", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
