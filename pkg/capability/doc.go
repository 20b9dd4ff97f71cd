// Package capability models the device capabilities that gate beacon sensing.
//
// Three capabilities must be satisfied before the sensing engine may run:
//
//   - Location permission (granted by the user through an OS dialog)
//   - Location services (a system-wide toggle, changed in the settings screen)
//   - Radio power (the short-range radio, switched on through an enable prompt)
//
// # Probing
//
// A Probe answers synchronous questions about the current state. Probing has
// no side effects and may be called at any time. Radio power is reported as a
// tri-state value so that absent hardware is distinguishable from a radio
// that is merely switched off; for gating purposes both collapse to "not
// enabled".
//
// # Requesting
//
// A Requester issues the asynchronous, user-mediated prompts. Each prompt
// reports back exactly once through its callback. Gate wraps a Requester and
// enforces the outstanding-prompt policy: at most one prompt of each kind is
// outstanding, and issuing a second one supersedes the first, which is
// answered negatively. Late answers from superseded prompts are dropped.
package capability
