package orchestrator

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/beaconsense/beacon-go/pkg/broadcast"
	"github.com/beaconsense/beacon-go/pkg/capability"
	"github.com/beaconsense/beacon-go/pkg/eventhub"
	"github.com/beaconsense/beacon-go/pkg/log"
	"github.com/beaconsense/beacon-go/pkg/pending"
	"github.com/beaconsense/beacon-go/pkg/sensing"
	"github.com/google/uuid"
)

// Host is the foreground context that can answer capability queries and
// show prompts.
type Host struct {
	Probe     capability.Probe
	Requester capability.Requester
}

// Prompt owners. Requests of different classes share a dialog that is
// already showing; a second request of the same class shows it again.
var (
	generalOwner = pending.ClassGeneral.String()
	radioOwner   = pending.ClassRadioPower.String()
)

// attachment is the per-host state.
type attachment struct {
	probe       capability.Probe
	gate        *capability.Gate
	broadcaster *broadcast.Broadcaster
}

// flow is an outstanding initializeAndCheck request.
type flow struct {
	req *pending.Request

	// last is the step most recently taken for req, guarded by
	// Orchestrator.mu.
	last      Step
	attempted bool
}

// Orchestrator is one beacon sensing session.
type Orchestrator struct {
	mu sync.Mutex

	config    Config
	logger    *slog.Logger
	events    log.Logger
	sessionID string

	hub        *eventhub.Hub
	lifecycle  *sensing.Lifecycle
	advertiser broadcast.Advertiser

	host     *attachment
	flow     *flow
	restored bool

	general *pending.Slot
	radio   *pending.Slot
}

// New creates a session around the sensing engine and advertiser. The
// session starts detached.
func New(engine sensing.Engine, advertiser broadcast.Advertiser, cfg Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
	}

	o := &Orchestrator{
		config:     cfg,
		logger:     cfg.Logger,
		events:     cfg.EventLogger,
		sessionID:  cfg.SessionID,
		hub:        eventhub.NewHub(),
		advertiser: advertiser,
		general:    pending.NewSlot(pending.ClassGeneral),
		radio:      pending.NewSlot(pending.ClassRadioPower),
	}
	if o.events == nil {
		o.events = log.NoopLogger{}
	}

	var store sensing.Store
	if cfg.Store != nil {
		store = cfg.Store
	}
	o.lifecycle = sensing.NewLifecycle(engine, o.hub, sensing.Config{
		Logger:      cfg.Logger,
		EventLogger: o.events,
		SessionID:   o.sessionID,
		Store:       store,
	})

	o.hub.OnSubscriptionChange(func(channel string, subscribed bool) {
		o.debug("observer changed", "channel", channel, "subscribed", subscribed)
	})

	periods := cfg.scanPeriods()
	if cfg.Store != nil {
		saved, ok, err := cfg.Store.LoadScanPeriods()
		switch {
		case err != nil:
			o.warn("loading scan periods failed", "err", err)
		case ok && saved.Validate() == nil:
			periods = saved
		}
	}
	if err := o.lifecycle.SetScanPeriods(periods); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return o, nil
}

// SessionID returns the session identifier.
func (o *Orchestrator) SessionID() string {
	return o.sessionID
}

// Hub returns the session's observer channels.
func (o *Orchestrator) Hub() *eventhub.Hub {
	return o.hub
}

// Bound reports whether the sensing engine is attached.
func (o *Orchestrator) Bound() bool {
	return o.lifecycle.IsBound()
}

// Lifecycle returns the engine lifecycle of the session.
func (o *Orchestrator) Lifecycle() *sensing.Lifecycle {
	return o.lifecycle
}

// Attach installs the host. A previously attached host is detached first.
func (o *Orchestrator) Attach(h Host) error {
	if h.Probe == nil || h.Requester == nil {
		return fmt.Errorf("%w: host needs a probe and a requester", ErrInvalidArgument)
	}
	o.Detach()

	gate := capability.NewGate(h.Requester, capability.GateConfig{
		Timeout: o.config.PromptTimeout,
		Logger:  o.logger,
	})
	gate.OnPrompt(o.onPrompt)

	a := &attachment{
		probe: h.Probe,
		gate:  gate,
		broadcaster: broadcast.New(o.advertiser, h.Probe, broadcast.Options{
			Logger:      o.logger,
			EventLogger: o.events,
			SessionID:   o.sessionID,
		}),
	}

	o.mu.Lock()
	o.host = a
	o.mu.Unlock()

	o.info("host attached")
	return nil
}

// Detach removes the host. Outstanding requests fail with ErrNotAttached
// and unanswered prompts are abandoned. The engine stays bound.
func (o *Orchestrator) Detach() {
	o.mu.Lock()
	a := o.host
	o.host = nil
	o.flow = nil
	o.mu.Unlock()

	if a == nil {
		return
	}
	o.general.FailCurrent(ErrNotAttached)
	o.radio.FailCurrent(ErrNotAttached)
	a.broadcaster.Abandon(ErrNotAttached)
	a.gate.Abandon()
	o.info("host detached")
}

// Attached reports whether a host is installed.
func (o *Orchestrator) Attached() bool {
	_, err := o.attached()
	return err == nil
}

func (o *Orchestrator) attached() (*attachment, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.host == nil {
		return nil, ErrNotAttached
	}
	return o.host, nil
}

// Initialize binds to the sensing engine without checking capabilities.
// The request resolves true once bound.
func (o *Orchestrator) Initialize() *pending.Request {
	const cmd = "initialize"
	o.logCommand(cmd, pending.ClassGeneral.String())
	if _, err := o.attached(); err != nil {
		return o.failed(pending.ClassGeneral, cmd, err)
	}

	req := o.track(pending.New(pending.ClassGeneral, cmd))
	o.putGeneral(req, nil)
	o.bind(req)
	return req
}

// InitializeAndCheck unlocks every missing capability in turn, then binds.
// The request resolves true once all capabilities are satisfied and the
// engine is bound.
func (o *Orchestrator) InitializeAndCheck() *pending.Request {
	const cmd = "initializeAndCheck"
	o.logCommand(cmd, pending.ClassGeneral.String())
	if _, err := o.attached(); err != nil {
		return o.failed(pending.ClassGeneral, cmd, err)
	}

	f := &flow{req: o.track(pending.New(pending.ClassGeneral, cmd))}
	o.putGeneral(f.req, f)
	o.advance(f)
	return f.req
}

// RequestAuthorization shows the permission dialog unless the permission is
// already granted. The request resolves with the answer and the answer is
// pushed to the authorization channel.
func (o *Orchestrator) RequestAuthorization() *pending.Request {
	const cmd = "requestAuthorization"
	o.logCommand(cmd, pending.ClassGeneral.String())
	a, err := o.attached()
	if err != nil {
		return o.failed(pending.ClassGeneral, cmd, err)
	}

	req := o.track(pending.New(pending.ClassGeneral, cmd))
	o.putGeneral(req, nil)

	if a.probe.HasLocationPermission() {
		o.pushAuthorization(capability.AuthorizationAllowed)
		o.general.Resolve(req, true)
		return req
	}

	a.gate.Request(capability.PromptLocationPermission, generalOwner, func(granted bool) {
		o.general.Resolve(req, granted)
	})
	return req
}

// OpenRadioSettings reports whether the radio is already on. If it is off
// the enable-radio prompt is shown and the returned request resolves with
// the re-probed radio state once the prompt is answered; the command itself
// does not wait for it.
func (o *Orchestrator) OpenRadioSettings() (bool, *pending.Request, error) {
	const cmd = "openBluetoothSettings"
	o.logCommand(cmd, pending.ClassRadioPower.String())
	a, err := o.attached()
	if err != nil {
		return false, nil, err
	}

	switch capability.SafeRadioState(a.probe) {
	case capability.RadioOn:
		return true, nil, nil
	case capability.RadioUnsupported:
		return false, nil, ErrCapabilityUnsupported
	}

	req := o.track(pending.New(pending.ClassRadioPower, cmd))
	if prev := o.radio.Put(req); prev != nil {
		o.debug("radio request superseded", "request_id", prev.ID())
	}
	a.gate.Request(capability.PromptRadioPower, radioOwner, func(bool) {
		o.radio.Resolve(req, capability.SafeRadioState(a.probe).Enabled())
	})
	return false, req, nil
}

// Resume re-evaluates an initializeAndCheck request that is waiting for the
// user to return from the location settings screen. If location services
// are still off the request stays outstanding. Requests waiting on a dialog
// are left alone.
func (o *Orchestrator) Resume() {
	o.mu.Lock()
	f := o.flow
	waiting := f != nil && f.attempted && f.last == StepOpenLocationSettings
	o.mu.Unlock()

	if !waiting {
		return
	}
	o.logCommand("resume", pending.ClassGeneral.String())
	o.advance(f)
}

// advance probes the capabilities and takes the next step for f.
func (o *Orchestrator) advance(f *flow) {
	if !o.general.Is(f.req) {
		return
	}
	a, err := o.attached()
	if err != nil {
		o.general.Fail(f.req, err)
		return
	}

	snap := capability.Take(a.probe)
	bound := o.lifecycle.IsBound()
	step := NextStep(snap, bound)
	o.logStep(f.req.ID(), step, snap, bound)

	o.mu.Lock()
	repeated := f.attempted && f.last == step && step.prompts()
	f.last, f.attempted = step, true
	o.mu.Unlock()

	if repeated {
		if step == StepOpenLocationSettings {
			// Stays outstanding until a later Resume finds the service on.
			o.debug("location services still disabled", "request_id", f.req.ID())
			return
		}
		o.general.Fail(f.req, failureFor(step))
		return
	}

	switch step {
	case StepRadioUnsupported:
		o.general.Fail(f.req, ErrCapabilityUnsupported)

	case StepRequestRadioPower:
		a.gate.Request(capability.PromptRadioPower, generalOwner, func(bool) {
			o.advance(f)
		})

	case StepRequestPermission:
		a.gate.Request(capability.PromptLocationPermission, generalOwner, func(bool) {
			o.advance(f)
		})

	case StepOpenLocationSettings:
		a.gate.OpenLocationSettings()

	case StepBind:
		o.bind(f.req)

	case StepSatisfied:
		o.general.Resolve(f.req, true)
	}
}

// bind attaches to the engine and settles req with the outcome.
func (o *Orchestrator) bind(req *pending.Request) {
	o.lifecycle.Bind(func(err error) {
		if err != nil {
			o.logError(err, "bind")
			o.general.Fail(req, fmt.Errorf("%w: %v", ErrEngineBindFailed, err))
			return
		}
		o.restoreMonitoring()
		o.general.Resolve(req, true)
	})
}

// putGeneral makes req the outstanding general request. f is the flow to
// track for Resume, or nil.
func (o *Orchestrator) putGeneral(req *pending.Request, f *flow) {
	o.mu.Lock()
	o.flow = f
	o.mu.Unlock()

	if prev := o.general.Put(req); prev != nil {
		o.debug("general request superseded", "request_id", prev.ID(), "command", prev.Command())
	}
}

// restoreMonitoring re-arms stored monitored regions once per session.
func (o *Orchestrator) restoreMonitoring() {
	if !o.config.RestoreMonitoring {
		return
	}
	o.mu.Lock()
	if o.restored {
		o.mu.Unlock()
		return
	}
	o.restored = true
	o.mu.Unlock()

	regions, err := o.config.Store.LoadMonitoredRegions()
	if err != nil {
		o.warn("loading monitored regions failed", "err", err)
		return
	}
	for _, r := range regions {
		if err := o.lifecycle.StartMonitoring(r); err != nil {
			o.warn("restoring monitored region failed", "region", r.Identifier, "err", err)
		}
	}
	o.info("monitoring restored", "regions", len(regions))
}

// Teardown stops all ranging and monitoring, clears region state and
// unbinds. Outstanding requests fail with ErrTornDown. It always succeeds
// and may be called any number of times.
func (o *Orchestrator) Teardown() (bool, error) {
	o.logCommand("close", "")

	o.mu.Lock()
	a := o.host
	o.flow = nil
	o.mu.Unlock()

	o.general.FailCurrent(ErrTornDown)
	o.radio.FailCurrent(ErrTornDown)
	if a != nil {
		a.broadcaster.Abandon(ErrTornDown)
		a.gate.Abandon()
	}

	o.hub.Ranging.Unsubscribe()
	o.hub.Monitoring.Unsubscribe()
	if err := o.lifecycle.Teardown(); err != nil {
		o.logError(err, "teardown")
		o.warn("teardown left engine errors", "err", err)
	}
	return true, nil
}

// Close tears the session down for good: it stops broadcasting, detaches
// the host and drops every observer.
func (o *Orchestrator) Close() error {
	o.Teardown()

	if a, err := o.attached(); err == nil {
		if err := a.broadcaster.Stop(); err != nil {
			o.warn("stopping broadcast failed", "err", err)
		}
	}
	o.Detach()
	o.hub.UnsubscribeAll()
	return o.lifecycle.Close()
}

// NotifyRadioState reports a radio power change from the OS to the radio
// state channel.
func (o *Orchestrator) NotifyRadioState(s capability.RadioState) {
	delivered := o.hub.RadioState.Push(s)
	o.logCapability(eventhub.ChannelRadioState, s.String(), delivered)
}

// onPrompt records prompt transitions. An answered permission dialog is
// pushed to the authorization channel whether or not the request that
// opened it is still outstanding.
func (o *Orchestrator) onPrompt(p capability.PromptEvent) {
	o.logPrompt(p)
	if p.Prompt == capability.PromptLocationPermission && p.Outcome == capability.OutcomeAnswered {
		o.pushAuthorization(capability.StatusFromAnswer(p.Value))
	}
}

func (o *Orchestrator) pushAuthorization(s capability.AuthorizationStatus) {
	delivered := o.hub.Authorization.Push(s)
	o.logCapability(eventhub.ChannelAuthorization, s.String(), delivered)
}

// failed returns an already failed request for cmd.
func (o *Orchestrator) failed(class pending.Class, cmd string, err error) *pending.Request {
	return o.track(pending.Failed(class, cmd, err))
}

func (o *Orchestrator) debug(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Debug(msg, append(args, "session_id", o.sessionID)...)
	}
}

func (o *Orchestrator) info(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Info(msg, append(args, "session_id", o.sessionID)...)
	}
}

func (o *Orchestrator) warn(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Warn(msg, append(args, "session_id", o.sessionID)...)
	}
}
