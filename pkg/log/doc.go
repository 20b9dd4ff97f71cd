// Package log provides structured session event capture for the
// orchestrator.
//
// This package defines the Logger interface and Event types for recording
// what an orchestrator session did: which commands were issued, which step
// the capability state machine chose, which prompts were shown and how they
// were answered, how pending requests settled, and what the sensing engine
// was told to do. It is separate from operational logging (slog); an event
// log is a complete machine-readable trace for debugging and analysis.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.EventLogger = log.NewSlogAdapter(slog.Default())
//
//	// For field traces: write to a binary file
//	cfg.EventLogger, _ = log.NewFileLogger("/var/log/beacon/session.blog")
//
//	// Both
//	cfg.EventLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys, using the
// .blog extension. The beacon-log tool views, filters, exports and summarizes
// them.
package log
