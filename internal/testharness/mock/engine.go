package mock

import (
	"sync"

	"github.com/beaconsense/beacon-go/pkg/region"
	"github.com/beaconsense/beacon-go/pkg/sensing"
)

// Engine is a simulated sensing engine.
//
// Binds stay pending until CompleteBind unless AutoBind is set. Operations
// are recorded in order and can be inspected with Ops.
type Engine struct {
	mu sync.Mutex

	notifier sensing.Notifier

	autoBind    bool
	bindErr     error
	rejectScans bool

	pendingBinds []func(error)
	bound        bool

	ranging    map[string]region.Region
	monitoring map[string]region.Region
	periods    sensing.ScanPeriods

	ops []string
}

// NewEngine creates an engine. With autoBind, every bind completes
// immediately on the calling goroutine.
func NewEngine(autoBind bool) *Engine {
	return &Engine{
		autoBind:   autoBind,
		ranging:    make(map[string]region.Region),
		monitoring: make(map[string]region.Region),
	}
}

// SetAutoBind changes whether binds complete immediately.
func (e *Engine) SetAutoBind(auto bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.autoBind = auto
}

// SetBindError makes subsequent automatic binds fail with err.
func (e *Engine) SetBindError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bindErr = err
}

// RejectScanPeriods makes SetScanPeriods fail.
func (e *Engine) RejectScanPeriods(reject bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rejectScans = reject
}

// SetNotifier implements sensing.Engine.
func (e *Engine) SetNotifier(n sensing.Notifier) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notifier = n
}

// Bind implements sensing.Engine.
func (e *Engine) Bind(onBound func(err error)) {
	e.mu.Lock()
	e.ops = append(e.ops, "bind")
	if !e.autoBind {
		e.pendingBinds = append(e.pendingBinds, onBound)
		e.mu.Unlock()
		return
	}
	err := e.bindErr
	e.bound = err == nil
	e.mu.Unlock()

	onBound(err)
}

// CompleteBind finishes the oldest pending bind.
func (e *Engine) CompleteBind(err error) error {
	e.mu.Lock()
	if len(e.pendingBinds) == 0 {
		e.mu.Unlock()
		return ErrNothingPending
	}
	fn := e.pendingBinds[0]
	e.pendingBinds = e.pendingBinds[1:]
	e.bound = err == nil
	e.mu.Unlock()

	fn(err)
	return nil
}

// PendingBinds returns the number of binds awaiting completion.
func (e *Engine) PendingBinds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pendingBinds)
}

// Unbind implements sensing.Engine.
func (e *Engine) Unbind() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ops = append(e.ops, "unbind")
	e.bound = false
	e.pendingBinds = nil
	e.ranging = make(map[string]region.Region)
	e.monitoring = make(map[string]region.Region)
}

// IsBound reports whether the engine considers itself bound.
func (e *Engine) IsBound() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bound
}

// StartRanging implements sensing.Engine.
func (e *Engine) StartRanging(r region.Region) error {
	return e.watch("start_ranging", e.ranging, r, true)
}

// StopRanging implements sensing.Engine.
func (e *Engine) StopRanging(r region.Region) error {
	return e.watch("stop_ranging", e.ranging, r, false)
}

// StartMonitoring implements sensing.Engine.
func (e *Engine) StartMonitoring(r region.Region) error {
	return e.watch("start_monitoring", e.monitoring, r, true)
}

// StopMonitoring implements sensing.Engine.
func (e *Engine) StopMonitoring(r region.Region) error {
	return e.watch("stop_monitoring", e.monitoring, r, false)
}

func (e *Engine) watch(op string, set map[string]region.Region, r region.Region, add bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.bound {
		return ErrNotBound
	}
	e.ops = append(e.ops, op+":"+r.Identifier)
	if add {
		set[r.Identifier] = r
	} else {
		delete(set, r.Identifier)
	}
	return nil
}

// SetScanPeriods implements sensing.Engine.
func (e *Engine) SetScanPeriods(p sensing.ScanPeriods) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rejectScans {
		return ErrRejected
	}
	e.ops = append(e.ops, "scan_periods")
	e.periods = p
	return nil
}

// ScanPeriods returns the last applied scan periods.
func (e *Engine) ScanPeriods() sensing.ScanPeriods {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.periods
}

// Ops returns the recorded operations.
func (e *Engine) Ops() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.ops))
	copy(out, e.ops)
	return out
}

// Ranging returns the identifiers of ranged regions.
func (e *Engine) Ranging() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return keys(e.ranging)
}

// Monitoring returns the identifiers of monitored regions.
func (e *Engine) Monitoring() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return keys(e.monitoring)
}

// EmitBeacons reports a scan cycle for a ranged region.
func (e *Engine) EmitBeacons(identifier string, beacons []region.Beacon) error {
	e.mu.Lock()
	r, ok := e.ranging[identifier]
	n := e.notifier
	e.mu.Unlock()
	if !ok {
		return ErrUnknownRegion
	}
	if n != nil {
		n.DidRangeBeacons(r, beacons)
	}
	return nil
}

// EmitTransition reports a monitoring transition for a monitored region.
func (e *Engine) EmitTransition(identifier string, t region.Transition, state region.State) error {
	e.mu.Lock()
	r, ok := e.monitoring[identifier]
	n := e.notifier
	e.mu.Unlock()
	if !ok {
		return ErrUnknownRegion
	}
	if n == nil {
		return nil
	}
	switch t {
	case region.DidEnter:
		n.DidEnterRegion(r)
	case region.DidExit:
		n.DidExitRegion(r)
	default:
		n.DidDetermineState(r, state)
	}
	return nil
}

// Disconnect simulates the engine service going away.
func (e *Engine) Disconnect() {
	e.mu.Lock()
	e.ops = append(e.ops, "disconnect")
	e.bound = false
	e.ranging = make(map[string]region.Region)
	e.monitoring = make(map[string]region.Region)
	n := e.notifier
	e.mu.Unlock()

	if n != nil {
		n.ServiceDisconnected()
	}
}

func keys(m map[string]region.Region) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// Compile-time interface satisfaction check.
var _ sensing.Engine = (*Engine)(nil)
