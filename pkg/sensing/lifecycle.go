package sensing

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/beaconsense/beacon-go/pkg/eventhub"
	"github.com/beaconsense/beacon-go/pkg/log"
	"github.com/beaconsense/beacon-go/pkg/region"
)

// Lifecycle errors.
var (
	ErrNotBound            = errors.New("sensing engine not bound")
	ErrBindCanceled        = errors.New("bind canceled")
	ErrServiceDisconnected = errors.New("sensing engine service disconnected")
	ErrEngine              = errors.New("sensing engine error")
	ErrClosed              = errors.New("sensing lifecycle closed")
)

// BindState is the attachment state to the engine.
type BindState uint8

const (
	// StateUnbound indicates no engine attachment.
	StateUnbound BindState = iota

	// StateBinding indicates a bind was requested and has not completed.
	StateBinding

	// StateBound indicates the engine is attached.
	StateBound

	// StateClosed indicates the lifecycle was torn down for good.
	StateClosed
)

// String returns a human-readable state name.
func (s BindState) String() string {
	switch s {
	case StateUnbound:
		return "UNBOUND"
	case StateBinding:
		return "BINDING"
	case StateBound:
		return "BOUND"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Store persists settings that should outlive a session.
type Store interface {
	SaveScanPeriods(p ScanPeriods) error
	SaveMonitoredRegions(regions []region.Region) error
}

// Config configures a Lifecycle.
type Config struct {
	// Logger is the optional logger for debug output.
	Logger *slog.Logger

	// EventLogger receives ENGINE events. Nil disables capture.
	EventLogger log.Logger

	// SessionID is stamped on captured events.
	SessionID string

	// Store persists scan periods and monitored regions. Optional.
	Store Store
}

// Lifecycle tracks the bind state and the watched regions of a session.
type Lifecycle struct {
	mu sync.Mutex

	engine Engine
	hub    *eventhub.Hub

	logger      *slog.Logger
	eventLogger log.Logger
	sessionID   string
	store       Store

	state BindState

	// gen increments on every bind attempt and unbind so that a completion
	// from an abandoned bind is recognised and dropped.
	gen     uint64
	waiters []func(error)

	ranging    *region.Set
	monitoring *region.Set

	periods    ScanPeriods
	periodsSet bool

	onStateChange func(oldState, newState BindState)
}

// NewLifecycle creates a lifecycle around engine and installs itself as the
// engine's notifier. Events are pushed to hub.
func NewLifecycle(engine Engine, hub *eventhub.Hub, cfg Config) *Lifecycle {
	l := &Lifecycle{
		engine:      engine,
		hub:         hub,
		logger:      cfg.Logger,
		eventLogger: cfg.EventLogger,
		sessionID:   cfg.SessionID,
		store:       cfg.Store,
		ranging:     region.NewSet(),
		monitoring:  region.NewSet(),
	}
	engine.SetNotifier(l)
	return l
}

// OnStateChange sets a callback for bind state changes.
func (l *Lifecycle) OnStateChange(fn func(oldState, newState BindState)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onStateChange = fn
}

// State returns the current bind state.
func (l *Lifecycle) State() BindState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// IsBound reports whether the engine is attached.
func (l *Lifecycle) IsBound() bool {
	return l.State() == StateBound
}

// Bind attaches to the engine. onBound is called exactly once: immediately
// if already bound, otherwise when the bind completes. Concurrent calls
// while a bind is in flight share that bind.
func (l *Lifecycle) Bind(onBound func(err error)) {
	if onBound == nil {
		onBound = func(error) {}
	}

	l.mu.Lock()
	switch l.state {
	case StateClosed:
		l.mu.Unlock()
		onBound(ErrClosed)
		return
	case StateBound:
		l.mu.Unlock()
		onBound(nil)
		return
	case StateBinding:
		l.waiters = append(l.waiters, onBound)
		l.mu.Unlock()
		return
	}

	l.gen++
	gen := l.gen
	l.waiters = append(l.waiters, onBound)
	notify := l.setStateLocked(StateBinding)
	l.mu.Unlock()

	notify()
	l.debug("binding engine")
	l.engine.Bind(func(err error) {
		l.bindComplete(gen, err)
	})
}

func (l *Lifecycle) bindComplete(gen uint64, err error) {
	l.mu.Lock()
	if gen != l.gen || l.state != StateBinding {
		l.mu.Unlock()
		l.debug("stale bind completion dropped", "err", err)
		return
	}

	waiters := l.waiters
	l.waiters = nil

	var notify func()
	var periods ScanPeriods
	apply := false
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrEngine, err)
		notify = l.setStateLocked(StateUnbound)
	} else {
		notify = l.setStateLocked(StateBound)
		periods, apply = l.periods, l.periodsSet
	}
	l.mu.Unlock()

	notify()
	if err != nil {
		l.logEngine(log.EngineBindState, "", err.Error())
		if l.logger != nil {
			l.logger.Warn("engine bind failed", "err", err)
		}
	} else if apply {
		if perr := l.engine.SetScanPeriods(periods); perr != nil && l.logger != nil {
			l.logger.Warn("applying scan periods after bind failed", "err", perr)
		}
	}

	for _, fn := range waiters {
		fn(err)
	}
}

// Unbind detaches from the engine. An in-flight bind is abandoned and its
// waiters fail with ErrBindCanceled. Unbinding while unbound is a no-op.
func (l *Lifecycle) Unbind() {
	l.mu.Lock()
	if l.state != StateBinding && l.state != StateBound {
		l.mu.Unlock()
		return
	}
	l.gen++
	waiters := l.waiters
	l.waiters = nil
	notify := l.setStateLocked(StateUnbound)
	l.mu.Unlock()

	l.engine.Unbind()
	notify()
	for _, fn := range waiters {
		fn(ErrBindCanceled)
	}
}

// StartRanging starts ranging r. The engine must be bound. Starting a region
// that is already ranged with identical criteria is a no-op.
func (l *Lifecycle) StartRanging(r region.Region) error {
	return l.start(r, l.ranging, l.engine.StartRanging, log.EngineRangingStarted, false)
}

// StopRanging stops ranging the region with r's identifier. Stopping a region
// that is not ranged is a no-op.
func (l *Lifecycle) StopRanging(r region.Region) error {
	return l.stop(r, l.ranging, l.engine.StopRanging, log.EngineRangingStopped, false)
}

// StartMonitoring starts monitoring r. The engine must be bound.
func (l *Lifecycle) StartMonitoring(r region.Region) error {
	return l.start(r, l.monitoring, l.engine.StartMonitoring, log.EngineMonitoringStarted, true)
}

// StopMonitoring stops monitoring the region with r's identifier.
func (l *Lifecycle) StopMonitoring(r region.Region) error {
	return l.stop(r, l.monitoring, l.engine.StopMonitoring, log.EngineMonitoringStopped, true)
}

func (l *Lifecycle) start(r region.Region, set *region.Set, op func(region.Region) error,
	action log.EngineAction, persist bool) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if !l.IsBound() {
		return ErrNotBound
	}
	if prev, ok := set.Get(r.Identifier); ok && prev.Equal(r) {
		return nil
	}
	if err := op(r); err != nil {
		return fmt.Errorf("%w: %v", ErrEngine, err)
	}
	set.Add(r)
	l.logEngine(action, r.Identifier, "")
	if persist {
		l.saveMonitored()
	}
	return nil
}

func (l *Lifecycle) stop(r region.Region, set *region.Set, op func(region.Region) error,
	action log.EngineAction, persist bool) error {
	watched, ok := set.Get(r.Identifier)
	if !ok {
		return nil
	}
	set.Remove(r.Identifier)
	if persist {
		l.saveMonitored()
	}
	if !l.IsBound() {
		return nil
	}
	if err := op(watched); err != nil {
		return fmt.Errorf("%w: %v", ErrEngine, err)
	}
	l.logEngine(action, r.Identifier, "")
	return nil
}

// RangingRegions returns the regions currently ranged.
func (l *Lifecycle) RangingRegions() []region.Region {
	return l.ranging.List()
}

// MonitoredRegions returns the regions currently monitored.
func (l *Lifecycle) MonitoredRegions() []region.Region {
	return l.monitoring.List()
}

// SetScanPeriods stores p and applies it to the engine if bound. Stored
// periods are re-applied after every bind.
func (l *Lifecycle) SetScanPeriods(p ScanPeriods) error {
	if err := p.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	l.periods = p
	l.periodsSet = true
	bound := l.state == StateBound
	l.mu.Unlock()

	if l.store != nil {
		if err := l.store.SaveScanPeriods(p); err != nil && l.logger != nil {
			l.logger.Warn("saving scan periods failed", "err", err)
		}
	}
	if !bound {
		return nil
	}
	if err := l.engine.SetScanPeriods(p); err != nil {
		return fmt.Errorf("%w: %v", ErrEngine, err)
	}
	l.logEngine(log.EngineScanPeriods, "", p.Foreground.String()+"/"+p.ForegroundBetween.String())
	return nil
}

// ScanPeriods returns the stored scan periods, or the engine defaults if
// none were set.
func (l *Lifecycle) ScanPeriods() ScanPeriods {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.periodsSet {
		return DefaultScanPeriods()
	}
	return l.periods
}

// StopAll stops every ranged and monitored region and clears both sets.
// Engine errors are collected; the sets are cleared regardless.
func (l *Lifecycle) StopAll() error {
	bound := l.IsBound()
	var errs []error
	for _, r := range l.ranging.Clear() {
		if !bound {
			continue
		}
		if err := l.engine.StopRanging(r); err != nil {
			errs = append(errs, fmt.Errorf("stop ranging %s: %w", r.Identifier, err))
			continue
		}
		l.logEngine(log.EngineRangingStopped, r.Identifier, "stop all")
	}
	for _, r := range l.monitoring.Clear() {
		if !bound {
			continue
		}
		if err := l.engine.StopMonitoring(r); err != nil {
			errs = append(errs, fmt.Errorf("stop monitoring %s: %w", r.Identifier, err))
			continue
		}
		l.logEngine(log.EngineMonitoringStopped, r.Identifier, "stop all")
	}
	return errors.Join(errs...)
}

// Teardown stops everything and unbinds. It is idempotent. Persisted
// monitored regions are left untouched so a later session can restore them.
func (l *Lifecycle) Teardown() error {
	err := l.StopAll()
	l.Unbind()
	return err
}

// Close tears down and rejects any later bind.
func (l *Lifecycle) Close() error {
	err := l.Teardown()

	l.mu.Lock()
	notify := l.setStateLocked(StateClosed)
	l.mu.Unlock()
	notify()
	return err
}

// DidRangeBeacons pushes ranging results for ranged regions.
func (l *Lifecycle) DidRangeBeacons(r region.Region, beacons []region.Beacon) {
	watched, ok := l.ranging.Get(r.Identifier)
	if !ok {
		return
	}
	matched := make([]region.Beacon, 0, len(beacons))
	for _, b := range beacons {
		if watched.Matches(b) {
			matched = append(matched, b)
		}
	}
	l.hub.Ranging.Push(region.RangingResult{Region: watched, Beacons: matched})
}

// DidEnterRegion pushes an enter transition for a monitored region.
func (l *Lifecycle) DidEnterRegion(r region.Region) {
	l.pushMonitoring(r, region.DidEnter, region.StateUnknown)
}

// DidExitRegion pushes an exit transition for a monitored region.
func (l *Lifecycle) DidExitRegion(r region.Region) {
	l.pushMonitoring(r, region.DidExit, region.StateUnknown)
}

// DidDetermineState pushes the initial state of a monitored region.
func (l *Lifecycle) DidDetermineState(r region.Region, state region.State) {
	l.pushMonitoring(r, region.DidDetermineState, state)
}

func (l *Lifecycle) pushMonitoring(r region.Region, t region.Transition, state region.State) {
	watched, ok := l.monitoring.Get(r.Identifier)
	if !ok {
		return
	}
	l.hub.Monitoring.Push(region.MonitoringEvent{Transition: t, Region: watched, State: state})
}

// ServiceDisconnected drops the bind. Watched regions are no longer active
// on the engine, so both sets are cleared.
func (l *Lifecycle) ServiceDisconnected() {
	l.mu.Lock()
	if l.state != StateBinding && l.state != StateBound {
		l.mu.Unlock()
		return
	}
	l.gen++
	waiters := l.waiters
	l.waiters = nil
	notify := l.setStateLocked(StateUnbound)
	l.mu.Unlock()

	l.ranging.Clear()
	l.monitoring.Clear()
	if l.logger != nil {
		l.logger.Warn("engine service disconnected")
	}
	notify()
	for _, fn := range waiters {
		fn(ErrServiceDisconnected)
	}
}

// setStateLocked changes the state and returns a function that reports the
// change. The returned function must be called after l.mu is released.
func (l *Lifecycle) setStateLocked(s BindState) func() {
	old := l.state
	if old == s {
		return func() {}
	}
	l.state = s
	fn := l.onStateChange
	return func() {
		l.debug("bind state changed", "from", old.String(), "to", s.String())
		l.logEvent(log.EngineEvent{Action: log.EngineBindState, OldState: old.String(), NewState: s.String()})
		if fn != nil {
			fn(old, s)
		}
	}
}

func (l *Lifecycle) saveMonitored() {
	if l.store == nil {
		return
	}
	if err := l.store.SaveMonitoredRegions(l.monitoring.List()); err != nil && l.logger != nil {
		l.logger.Warn("saving monitored regions failed", "err", err)
	}
}

func (l *Lifecycle) logEngine(action log.EngineAction, regionID, reason string) {
	l.logEvent(log.EngineEvent{Action: action, Region: regionID, Reason: reason})
}

func (l *Lifecycle) logEvent(ev log.EngineEvent) {
	if l.eventLogger == nil {
		return
	}
	l.eventLogger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: l.sessionID,
		Category:  log.CategoryEngine,
		Engine:    &ev,
	})
}

func (l *Lifecycle) debug(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Debug(msg, args...)
	}
}

// Compile-time interface satisfaction check.
var _ Notifier = (*Lifecycle)(nil)
