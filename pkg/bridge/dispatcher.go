package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/beaconsense/beacon-go/pkg/broadcast"
	"github.com/beaconsense/beacon-go/pkg/capability"
	"github.com/beaconsense/beacon-go/pkg/orchestrator"
	"github.com/beaconsense/beacon-go/pkg/pending"
	"github.com/beaconsense/beacon-go/pkg/region"
)

// Reply receives the result of a call. It is called exactly once, possibly
// on another goroutine.
type Reply func(Result)

type handlerFunc func(args map[string]any, reply Reply)

// Dispatcher routes method names to orchestrator commands.
type Dispatcher struct {
	orch     *orchestrator.Orchestrator
	logger   *slog.Logger
	handlers map[string]handlerFunc
}

// NewDispatcher creates a dispatcher for orch. logger may be nil.
func NewDispatcher(orch *orchestrator.Orchestrator, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{orch: orch, logger: logger}
	d.handlers = map[string]handlerFunc{
		"initialize":                          d.await(orch.Initialize),
		"initializeAndCheck":                  d.await(orch.InitializeAndCheck),
		"requestAuthorization":                d.await(orch.RequestAuthorization),
		"setScanPeriod":                       d.scanPeriod("scanPeriod", orch.SetScanPeriod),
		"setBetweenScanPeriod":                d.scanPeriod("betweenScanPeriod", orch.SetBetweenScanPeriod),
		"setLocationAuthorizationTypeDefault": syncCall(orch.SetLocationAuthorizationTypeDefault),
		"authorizationStatus":                 d.authorizationStatus,
		"checkLocationServicesIfEnabled":      syncCall(orch.LocationServicesEnabled),
		"bluetoothState":                      d.bluetoothState,
		"openBluetoothSettings":               d.openBluetoothSettings,
		"openLocationSettings":                syncCall(orch.OpenLocationSettings),
		"openApplicationSettings":             d.openApplicationSettings,
		"close":                               syncCall(orch.Teardown),
		"startBroadcast":                      d.startBroadcast,
		"stopBroadcast":                       syncCall(orch.StopBroadcast),
		"isBroadcasting":                      syncCall(orch.IsBroadcasting),
		"isBroadcastSupported":                syncCall(orch.IsBroadcastSupported),
		"resume":                              d.resume,
	}
	return d
}

// Methods returns the supported method names, sorted.
func (d *Dispatcher) Methods() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs method with args and passes its result to reply. Unknown
// methods answer notImplemented.
func (d *Dispatcher) Dispatch(method string, args map[string]any, reply Reply) {
	h, ok := d.handlers[method]
	if !ok {
		if d.logger != nil {
			d.logger.Debug("unknown method", "method", method)
		}
		reply(NotImplemented())
		return
	}
	if args == nil {
		args = map[string]any{}
	}
	h(args, reply)
}

// Call dispatches method and waits for its result or for ctx to end.
func (d *Dispatcher) Call(ctx context.Context, method string, args map[string]any) (Result, error) {
	done := make(chan Result, 1)
	d.Dispatch(method, args, func(r Result) { done <- r })
	select {
	case r := <-done:
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// await answers when the request settles.
func (d *Dispatcher) await(start func() *pending.Request) handlerFunc {
	return func(_ map[string]any, reply Reply) {
		awaitRequest(start(), reply)
	}
}

func awaitRequest(req *pending.Request, reply Reply) {
	req.OnSettle(func(res pending.Result) {
		if res.Err != nil {
			reply(Error(res.Err))
			return
		}
		reply(Success(res.Value))
	})
}

func syncCall[T any](fn func() (T, error)) handlerFunc {
	return func(_ map[string]any, reply Reply) {
		v, err := fn()
		if err != nil {
			reply(Error(err))
			return
		}
		reply(Success(v))
	}
}

// scanPeriod reads a millisecond period from args[key].
func (d *Dispatcher) scanPeriod(key string, set func(time.Duration) (bool, error)) handlerFunc {
	return func(args map[string]any, reply Reply) {
		raw, ok := args[key]
		if !ok {
			reply(Error(fmt.Errorf("%w: %s is required", orchestrator.ErrInvalidArgument, key)))
			return
		}
		ms, err := region.ToInt(raw)
		if err != nil {
			reply(Error(fmt.Errorf("%w: %s: %v", orchestrator.ErrInvalidArgument, key, err)))
			return
		}
		ok, err = set(time.Duration(ms) * time.Millisecond)
		if err != nil {
			reply(Error(err))
			return
		}
		reply(Success(ok))
	}
}

func (d *Dispatcher) authorizationStatus(_ map[string]any, reply Reply) {
	s, err := d.orch.AuthorizationStatus()
	if err != nil {
		reply(Error(err))
		return
	}
	reply(Success(s.String()))
}

func (d *Dispatcher) bluetoothState(_ map[string]any, reply Reply) {
	s, err := d.orch.RadioPowerState()
	if err != nil {
		reply(Error(err))
		return
	}
	reply(Success(RadioStateName(s)))
}

// openBluetoothSettings answers right away with whether the radio was
// already on. The radio prompt answer arrives on the radio_state stream.
func (d *Dispatcher) openBluetoothSettings(_ map[string]any, reply Reply) {
	on, req, err := d.orch.OpenRadioSettings()
	if err != nil {
		reply(Error(err))
		return
	}
	if req != nil && d.logger != nil {
		req.OnSettle(func(res pending.Result) {
			d.logger.Debug("radio prompt settled", "request_id", req.ID(), "value", res.Value, "err", res.Err)
		})
	}
	reply(Success(on))
}

func (d *Dispatcher) openApplicationSettings(_ map[string]any, reply Reply) {
	reply(Error(d.orch.OpenApplicationSettings()))
}

func (d *Dispatcher) startBroadcast(args map[string]any, reply Reply) {
	cfg, err := broadcast.Parse(args)
	if err != nil {
		reply(Error(err))
		return
	}
	awaitRequest(d.orch.StartBroadcast(cfg), reply)
}

func (d *Dispatcher) resume(_ map[string]any, reply Reply) {
	d.orch.Resume()
	reply(Success(true))
}

// RadioStateName returns the wire name of a radio state.
func RadioStateName(s capability.RadioState) string {
	switch s {
	case capability.RadioOn:
		return "STATE_ON"
	case capability.RadioOff:
		return "STATE_OFF"
	default:
		return "STATE_UNSUPPORTED"
	}
}
