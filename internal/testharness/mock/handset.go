// Package mock provides simulated handset, sensing engine and advertiser
// implementations for tests and the interactive simulator.
package mock

import (
	"sync"

	"github.com/beaconsense/beacon-go/pkg/capability"
)

// HandsetState is the capability state of a simulated handset.
type HandsetState struct {
	Permission       bool
	LocationService  bool
	Radio            capability.RadioState
	BroadcastCapable bool

	// FaultOnAbsentRadio makes RadioPowerState panic instead of reporting
	// RadioUnsupported, like platform bindings without an adapter.
	FaultOnAbsentRadio bool
}

// HandsetHandlers holds callbacks for handset events.
type HandsetHandlers struct {
	// OnPrompt is called when a prompt is shown.
	OnPrompt func(p capability.Prompt)

	// OnRadioChange is called when the radio state is changed with SetRadio.
	OnRadioChange func(s capability.RadioState)
}

// Handset is a simulated phone implementing capability.Probe and
// capability.Requester. Prompts stay pending until answered explicitly.
type Handset struct {
	mu sync.RWMutex

	state HandsetState

	permissionPrompts []func(bool)
	radioPrompts      []func(bool)
	shown             []capability.Prompt
	settingsOpened    int

	handlers HandsetHandlers
}

// NewHandset creates a handset in the given state.
func NewHandset(state HandsetState) *Handset {
	return &Handset{state: state}
}

// SetHandlers installs event callbacks.
func (h *Handset) SetHandlers(handlers HandsetHandlers) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers = handlers
}

// State returns the current capability state.
func (h *Handset) State() HandsetState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// SetPermission changes the location permission.
func (h *Handset) SetPermission(granted bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Permission = granted
}

// SetLocationService toggles system location services.
func (h *Handset) SetLocationService(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.LocationService = enabled
}

// SetRadio changes the radio state and reports it to OnRadioChange.
func (h *Handset) SetRadio(s capability.RadioState) {
	h.mu.Lock()
	changed := h.state.Radio != s
	h.state.Radio = s
	fn := h.handlers.OnRadioChange
	h.mu.Unlock()

	if changed && fn != nil {
		fn(s)
	}
}

// SetBroadcastCapable changes advertising support.
func (h *Handset) SetBroadcastCapable(capable bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.BroadcastCapable = capable
}

// HasLocationPermission implements capability.Probe.
func (h *Handset) HasLocationPermission() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state.Permission
}

// IsLocationServiceEnabled implements capability.Probe.
func (h *Handset) IsLocationServiceEnabled() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state.LocationService
}

// RadioPowerState implements capability.Probe.
func (h *Handset) RadioPowerState() capability.RadioState {
	h.mu.RLock()
	s, fault := h.state.Radio, h.state.FaultOnAbsentRadio
	h.mu.RUnlock()

	if s == capability.RadioUnsupported && fault {
		panic("bluetooth adapter not available")
	}
	return s
}

// IsBroadcastCapable implements capability.Probe.
func (h *Handset) IsBroadcastCapable() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state.BroadcastCapable
}

// RequestLocationPermission implements capability.Requester.
func (h *Handset) RequestLocationPermission(onResult func(granted bool)) {
	h.mu.Lock()
	h.permissionPrompts = append(h.permissionPrompts, onResult)
	fn := h.record(capability.PromptLocationPermission)
	h.mu.Unlock()
	fn()
}

// RequestRadioPowerOn implements capability.Requester.
func (h *Handset) RequestRadioPowerOn(onResult func(accepted bool)) {
	h.mu.Lock()
	h.radioPrompts = append(h.radioPrompts, onResult)
	fn := h.record(capability.PromptRadioPower)
	h.mu.Unlock()
	fn()
}

// OpenLocationSettings implements capability.Requester.
func (h *Handset) OpenLocationSettings() {
	h.mu.Lock()
	h.settingsOpened++
	fn := h.record(capability.PromptLocationSettings)
	h.mu.Unlock()
	fn()
}

func (h *Handset) record(p capability.Prompt) func() {
	h.shown = append(h.shown, p)
	fn := h.handlers.OnPrompt
	return func() {
		if fn != nil {
			fn(p)
		}
	}
}

// AnswerPermission answers the oldest pending permission prompt and updates
// the permission accordingly.
func (h *Handset) AnswerPermission(granted bool) error {
	h.mu.Lock()
	if len(h.permissionPrompts) == 0 {
		h.mu.Unlock()
		return ErrNothingPending
	}
	fn := h.permissionPrompts[0]
	h.permissionPrompts = h.permissionPrompts[1:]
	h.state.Permission = granted
	h.mu.Unlock()

	fn(granted)
	return nil
}

// AnswerRadio answers the oldest pending radio prompt. Accepting turns the
// radio on and reports the change before the prompt answer.
func (h *Handset) AnswerRadio(accepted bool) error {
	h.mu.Lock()
	if len(h.radioPrompts) == 0 {
		h.mu.Unlock()
		return ErrNothingPending
	}
	fn := h.radioPrompts[0]
	h.radioPrompts = h.radioPrompts[1:]
	h.mu.Unlock()

	if accepted {
		h.SetRadio(capability.RadioOn)
	}
	fn(accepted)
	return nil
}

// DismissPermission drops the oldest pending permission prompt without any
// answer, as when the system dialog is dismissed without a result.
func (h *Handset) DismissPermission() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.permissionPrompts) == 0 {
		return ErrNothingPending
	}
	h.permissionPrompts = h.permissionPrompts[1:]
	return nil
}

// Pending returns the number of unanswered prompts of kind p.
func (h *Handset) Pending(p capability.Prompt) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	switch p {
	case capability.PromptLocationPermission:
		return len(h.permissionPrompts)
	case capability.PromptRadioPower:
		return len(h.radioPrompts)
	default:
		return 0
	}
}

// Prompts returns every prompt shown so far, in order.
func (h *Handset) Prompts() []capability.Prompt {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]capability.Prompt, len(h.shown))
	copy(out, h.shown)
	return out
}

// ClearPrompts forgets the prompt history.
func (h *Handset) ClearPrompts() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shown = h.shown[:0]
}

// SettingsOpened returns how often the location settings screen was opened.
func (h *Handset) SettingsOpened() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.settingsOpened
}

// Compile-time interface satisfaction checks.
var (
	_ capability.Probe     = (*Handset)(nil)
	_ capability.Requester = (*Handset)(nil)
)
