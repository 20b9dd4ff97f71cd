package bridge_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/beaconsense/beacon-go/internal/testharness/mock"
	"github.com/beaconsense/beacon-go/pkg/bridge"
	"github.com/beaconsense/beacon-go/pkg/capability"
	"github.com/beaconsense/beacon-go/pkg/orchestrator"
	"github.com/beaconsense/beacon-go/pkg/region"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type session struct {
	handset *mock.Handset
	engine  *mock.Engine
	orch    *orchestrator.Orchestrator
	d       *bridge.Dispatcher
}

func granted() mock.HandsetState {
	return mock.HandsetState{
		Permission:       true,
		LocationService:  true,
		Radio:            capability.RadioOn,
		BroadcastCapable: true,
	}
}

func newSession(t *testing.T, state mock.HandsetState) *session {
	t.Helper()
	s := &session{
		handset: mock.NewHandset(state),
		engine:  mock.NewEngine(true),
	}
	orch, err := orchestrator.New(s.engine, mock.NewAdvertiser(true), orchestrator.DefaultConfig())
	require.NoError(t, err)
	s.orch = orch
	s.handset.SetHandlers(mock.HandsetHandlers{OnRadioChange: orch.NotifyRadioState})
	require.NoError(t, orch.Attach(orchestrator.Host{Probe: s.handset, Requester: s.handset}))
	t.Cleanup(func() { _ = orch.Close() })

	s.d = bridge.NewDispatcher(orch, nil)
	return s
}

func call(t *testing.T, d *bridge.Dispatcher, method string, args map[string]any) bridge.Result {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	res, err := d.Call(ctx, method, args)
	require.NoError(t, err, "method %s did not answer", method)
	return res
}

func requireFailure(t *testing.T, res bridge.Result, kind orchestrator.Kind) {
	t.Helper()
	require.NotNil(t, res.Failure, "expected failure, got %+v", res)
	assert.Equal(t, kind, res.Failure.Kind)
}

func TestDispatcherMethods(t *testing.T) {
	s := newSession(t, granted())

	want := []string{
		"authorizationStatus", "bluetoothState", "checkLocationServicesIfEnabled", "close",
		"initialize", "initializeAndCheck", "isBroadcastSupported", "isBroadcasting",
		"openApplicationSettings", "openBluetoothSettings", "openLocationSettings",
		"requestAuthorization", "resume", "setBetweenScanPeriod", "setLocationAuthorizationTypeDefault",
		"setScanPeriod", "startBroadcast", "stopBroadcast",
	}
	assert.Equal(t, want, s.d.Methods())
}

func TestDispatcherNotImplemented(t *testing.T) {
	s := newSession(t, granted())

	assert.True(t, call(t, s.d, "startMonitoringBeaconsForRegion", nil).NotImplemented)
	assert.True(t, call(t, s.d, "openApplicationSettings", nil).NotImplemented)
}

func TestDispatcherSyncQueries(t *testing.T) {
	state := granted()
	state.Permission = false
	s := newSession(t, state)

	assert.Equal(t, bridge.Success("NOT_DETERMINED"), call(t, s.d, "authorizationStatus", nil))
	assert.Equal(t, bridge.Success(true), call(t, s.d, "checkLocationServicesIfEnabled", nil))
	assert.Equal(t, bridge.Success(true), call(t, s.d, "setLocationAuthorizationTypeDefault", nil))
	assert.Equal(t, bridge.Success(true), call(t, s.d, "isBroadcastSupported", nil))
	assert.Equal(t, bridge.Success(false), call(t, s.d, "isBroadcasting", nil))
	assert.Equal(t, bridge.Success(true), call(t, s.d, "resume", nil))
	assert.Equal(t, bridge.Success(true), call(t, s.d, "close", nil))
}

func TestDispatcherBluetoothState(t *testing.T) {
	tests := []struct {
		state capability.RadioState
		want  string
	}{
		{capability.RadioOn, "STATE_ON"},
		{capability.RadioOff, "STATE_OFF"},
		{capability.RadioUnsupported, "STATE_UNSUPPORTED"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			state := granted()
			state.Radio = tt.state
			state.FaultOnAbsentRadio = true
			s := newSession(t, state)

			assert.Equal(t, bridge.Success(tt.want), call(t, s.d, "bluetoothState", nil))
		})
	}
}

func TestDispatcherAsyncAnswersOnSettle(t *testing.T) {
	state := granted()
	state.Permission = false
	s := newSession(t, state)

	var got []bridge.Result
	s.d.Dispatch("initializeAndCheck", nil, func(r bridge.Result) { got = append(got, r) })
	assert.Empty(t, got, "answered before the permission prompt")

	require.NoError(t, s.handset.AnswerPermission(true))
	require.Len(t, got, 1)
	assert.Equal(t, bridge.Success(true), got[0])
}

func TestDispatcherRequestAuthorizationDenied(t *testing.T) {
	state := granted()
	state.Permission = false
	s := newSession(t, state)

	var got []bridge.Result
	s.d.Dispatch("requestAuthorization", nil, func(r bridge.Result) { got = append(got, r) })
	require.NoError(t, s.handset.AnswerPermission(false))

	require.Len(t, got, 1)
	assert.Equal(t, bridge.Success(false), got[0])
}

func TestDispatcherOpenBluetoothSettings(t *testing.T) {
	state := granted()
	state.Radio = capability.RadioOff
	s := newSession(t, state)

	assert.Equal(t, bridge.Success(false), call(t, s.d, "openBluetoothSettings", nil))
	assert.Equal(t, 1, s.handset.Pending(capability.PromptRadioPower))

	require.NoError(t, s.handset.AnswerRadio(true))
	assert.Equal(t, bridge.Success(true), call(t, s.d, "openBluetoothSettings", nil))
}

func TestDispatcherScanPeriods(t *testing.T) {
	s := newSession(t, granted())
	require.True(t, call(t, s.d, "initialize", nil).OK())

	assert.Equal(t, bridge.Success(true), call(t, s.d, "setScanPeriod", map[string]any{"scanPeriod": float64(500)}))
	assert.Equal(t, bridge.Success(true), call(t, s.d, "setBetweenScanPeriod", map[string]any{"betweenScanPeriod": 2000}))
	assert.Equal(t, 500*time.Millisecond, s.engine.ScanPeriods().Foreground)
	assert.Equal(t, 2*time.Second, s.engine.ScanPeriods().ForegroundBetween)

	requireFailure(t, call(t, s.d, "setScanPeriod", nil), orchestrator.KindInvalidArgument)
	requireFailure(t, call(t, s.d, "setScanPeriod", map[string]any{"scanPeriod": "fast"}), orchestrator.KindInvalidArgument)
	requireFailure(t, call(t, s.d, "setScanPeriod", map[string]any{"scanPeriod": 0}), orchestrator.KindInvalidArgument)

	s.engine.RejectScanPeriods(true)
	assert.Equal(t, bridge.Success(false), call(t, s.d, "setScanPeriod", map[string]any{"scanPeriod": 700}))
}

func TestDispatcherBroadcast(t *testing.T) {
	s := newSession(t, granted())

	res := call(t, s.d, "startBroadcast", map[string]any{
		"identifier":    "desk",
		"proximityUUID": "2f234454-cf6d-4a0f-adf2-f4911ba9ffa6",
		"major":         float64(1),
		"minor":         float64(2),
	})
	assert.Equal(t, bridge.Success(true), res)
	assert.Equal(t, bridge.Success(true), call(t, s.d, "isBroadcasting", nil))
	assert.Equal(t, bridge.Success(true), call(t, s.d, "stopBroadcast", nil))

	requireFailure(t, call(t, s.d, "startBroadcast", map[string]any{"identifier": "desk"}), orchestrator.KindInvalidArgument)
}

func TestDispatcherNotAttached(t *testing.T) {
	s := newSession(t, granted())
	s.orch.Detach()

	requireFailure(t, call(t, s.d, "initializeAndCheck", nil), orchestrator.KindNotAttached)
	requireFailure(t, call(t, s.d, "authorizationStatus", nil), orchestrator.KindNotAttached)
	requireFailure(t, call(t, s.d, "bluetoothState", nil), orchestrator.KindNotAttached)
}

func TestDispatcherCallContext(t *testing.T) {
	state := granted()
	state.Permission = false
	s := newSession(t, state)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := s.d.Call(ctx, "requestAuthorization", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDispatcherSubscribe(t *testing.T) {
	s := newSession(t, granted())
	require.True(t, call(t, s.d, "initialize", nil).OK())

	_, err := s.d.Subscribe("bogus", nil, func(bridge.StreamEvent) {})
	assert.Equal(t, orchestrator.KindInvalidArgument, orchestrator.KindOf(err))

	_, err = s.d.Subscribe("ranging", map[string]any{}, func(bridge.StreamEvent) {})
	assert.Equal(t, orchestrator.KindInvalidArgument, orchestrator.KindOf(err))

	var events []bridge.StreamEvent
	sub, err := s.d.Subscribe("ranging", map[string]any{
		"regions": []any{map[string]any{"identifier": "office"}},
	}, func(ev bridge.StreamEvent) { events = append(events, ev) })
	require.NoError(t, err)

	require.NoError(t, s.engine.EmitBeacons("office", []region.Beacon{{Major: 3}}))
	require.Len(t, events, 1)
	assert.Equal(t, "ranging", events[0].Stream)

	sub.Cancel()
	assert.Empty(t, s.engine.Ranging())

	var radio []bridge.StreamEvent
	_, err = s.d.Subscribe("radio_state", nil, func(ev bridge.StreamEvent) { radio = append(radio, ev) })
	require.NoError(t, err)
	require.Len(t, radio, 1)
	assert.Equal(t, "STATE_ON", radio[0].Data)
}

func TestResultJSON(t *testing.T) {
	tests := []struct {
		name string
		res  bridge.Result
		want string
	}{
		{"false success", bridge.Success(false), `{"success":false}`},
		{"string success", bridge.Success("ALLOWED"), `{"success":"ALLOWED"}`},
		{"error", bridge.Error(orchestrator.ErrPermissionDenied),
			`{"error":{"kind":"PermissionDenied","message":"location permission denied"}}`},
		{"unimplemented error", bridge.Error(orchestrator.ErrUnimplemented), `{"notImplemented":true}`},
		{"not implemented", bridge.NotImplemented(), `{"notImplemented":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.res)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))

			var back bridge.Result
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.res, back)
		})
	}
}
