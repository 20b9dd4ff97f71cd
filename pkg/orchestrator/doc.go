// Package orchestrator implements the capability-gated lifecycle of a beacon
// sensing session.
//
// An Orchestrator owns one session: the attachment to the sensing engine,
// the prompts shown to the user, the outstanding caller requests and the
// observer channels. Commands never block; those that depend on a user
// prompt or on the engine bind return a *pending.Request that settles
// exactly once.
//
// # Sequencing
//
// initializeAndCheck does not store which state it is in. After every
// asynchronous result it probes the capabilities again and asks NextStep
// what to do, so a capability that changes underneath a request (radio
// toggled from the system tray) is picked up on the next re-entry:
//
//	radio power -> location permission -> location service -> bind -> satisfied
//
// A prompt answered negatively is not shown again for the same request.
// If re-evaluation lands on the prompt that was just answered, the request
// fails with the matching kind (ServiceDisabled, PermissionDenied).
//
// Location settings navigation has no completion. The request stays
// outstanding until Resume re-evaluates it, or a newer command supersedes it.
//
// # Request classes
//
// General requests (initialize, initializeAndCheck, requestAuthorization)
// share one slot; radio power requests (openBluetoothSettings) have their
// own. A new request fails the outstanding one of its class with
// KindSuperseded before proceeding.
//
// # Host
//
// Prompts need a host context (the foreground UI). Until Attach is called,
// or after Detach, commands fail with KindNotAttached.
package orchestrator
