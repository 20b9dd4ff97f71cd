// Package sensing owns the attachment of a session to the beacon sensing
// engine.
//
// The engine itself (radio scanning, beacon decoding, distance estimation)
// is an external collaborator described by the Engine interface. Lifecycle
// wraps it with the state the orchestrator needs:
//
//   - bind state (Unbound, Binding, Bound); start and stop calls are only
//     issued to the engine once a bind has completed
//   - the sets of regions currently ranged and monitored
//   - foreground scan periods, re-applied after every bind
//
// Engine notifications are filtered against the watched regions and pushed
// to the session's event hub.
package sensing
