package capability_test

import (
	"sync"
	"testing"
	"time"

	"github.com/beaconsense/beacon-go/pkg/capability"
	"github.com/beaconsense/beacon-go/pkg/capability/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// answers records the values delivered to prompt callbacks.
type answers struct {
	mu     sync.Mutex
	values []bool
}

func (a *answers) add(v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values = append(a.values, v)
}

func (a *answers) get() []bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]bool(nil), a.values...)
}

func TestGateForwardsAnswer(t *testing.T) {
	requester := mocks.NewMockRequester(t)
	requester.EXPECT().RequestLocationPermission(mock.Anything).
		Run(func(onResult func(bool)) { onResult(true) }).Once()

	gate := capability.NewGate(requester, capability.GateConfig{})

	var got answers
	gate.RequestLocationPermission(got.add)

	assert.Equal(t, []bool{true}, got.get())
	assert.False(t, gate.Outstanding(capability.PromptLocationPermission))
}

func TestGateSupersedesOutstandingPrompt(t *testing.T) {
	var callbacks []func(bool)
	requester := mocks.NewMockRequester(t)
	requester.EXPECT().RequestRadioPowerOn(mock.Anything).
		Run(func(onResult func(bool)) { callbacks = append(callbacks, onResult) }).Twice()

	gate := capability.NewGate(requester, capability.GateConfig{})

	var first, second answers
	gate.RequestRadioPowerOn(first.add)
	require.True(t, gate.Outstanding(capability.PromptRadioPower))

	gate.RequestRadioPowerOn(second.add)

	// The first prompt is answered negatively as soon as it is superseded.
	assert.Equal(t, []bool{false}, first.get())
	assert.Empty(t, second.get())

	// A late answer to the superseded prompt is dropped.
	callbacks[0](true)
	assert.Equal(t, []bool{false}, first.get())
	assert.Empty(t, second.get())

	callbacks[1](true)
	assert.Equal(t, []bool{true}, second.get())
	assert.False(t, gate.Outstanding(capability.PromptRadioPower))
}

func TestGateJoinsPromptOfOtherOwner(t *testing.T) {
	var cb func(bool)
	requester := mocks.NewMockRequester(t)
	requester.EXPECT().RequestRadioPowerOn(mock.Anything).
		Run(func(onResult func(bool)) { cb = onResult }).Once()

	gate := capability.NewGate(requester, capability.GateConfig{})

	var events []capability.PromptEvent
	gate.OnPrompt(func(ev capability.PromptEvent) { events = append(events, ev) })

	var flow, single answers
	gate.Request(capability.PromptRadioPower, "flow", flow.add)
	gate.Request(capability.PromptRadioPower, "single", single.add)
	assert.Empty(t, flow.get())
	assert.Empty(t, single.get())

	cb(true)
	assert.Equal(t, []bool{true}, flow.get())
	assert.Equal(t, []bool{true}, single.get())
	assert.False(t, gate.Outstanding(capability.PromptRadioPower))

	require.Len(t, events, 3)
	assert.Equal(t, capability.OutcomeIssued, events[0].Outcome)
	assert.Equal(t, capability.OutcomeJoined, events[1].Outcome)
	assert.Equal(t, events[0].ID, events[1].ID)
	assert.Equal(t, capability.OutcomeAnswered, events[2].Outcome)
}

func TestGateSupersedeKeepsOtherOwners(t *testing.T) {
	var callbacks []func(bool)
	requester := mocks.NewMockRequester(t)
	requester.EXPECT().RequestLocationPermission(mock.Anything).
		Run(func(onResult func(bool)) { callbacks = append(callbacks, onResult) }).Twice()

	gate := capability.NewGate(requester, capability.GateConfig{})

	var a1, b, a2 answers
	gate.Request(capability.PromptLocationPermission, "a", a1.add)
	gate.Request(capability.PromptLocationPermission, "b", b.add)
	gate.Request(capability.PromptLocationPermission, "a", a2.add)

	// Only owner a's earlier callback is superseded.
	assert.Equal(t, []bool{false}, a1.get())
	assert.Empty(t, b.get())
	require.Len(t, callbacks, 2)

	callbacks[0](true)
	assert.Empty(t, b.get(), "answer to the superseded dialog must be dropped")

	callbacks[1](true)
	assert.Equal(t, []bool{true}, b.get())
	assert.Equal(t, []bool{true}, a2.get())
	assert.Equal(t, []bool{false}, a1.get())
}

func TestGateKindsAreIndependent(t *testing.T) {
	var radioCB, permCB func(bool)
	requester := mocks.NewMockRequester(t)
	requester.EXPECT().RequestRadioPowerOn(mock.Anything).
		Run(func(onResult func(bool)) { radioCB = onResult }).Once()
	requester.EXPECT().RequestLocationPermission(mock.Anything).
		Run(func(onResult func(bool)) { permCB = onResult }).Once()

	gate := capability.NewGate(requester, capability.GateConfig{})

	var radio, perm answers
	gate.RequestRadioPowerOn(radio.add)
	gate.RequestLocationPermission(perm.add)

	radioCB(true)
	assert.Equal(t, []bool{true}, radio.get())
	assert.Empty(t, perm.get(), "radio answer must not settle the permission prompt")

	permCB(false)
	assert.Equal(t, []bool{false}, perm.get())
}

func TestGateTimeoutAnswersNegatively(t *testing.T) {
	var cb func(bool)
	requester := mocks.NewMockRequester(t)
	requester.EXPECT().RequestLocationPermission(mock.Anything).
		Run(func(onResult func(bool)) { cb = onResult }).Once()

	gate := capability.NewGate(requester, capability.GateConfig{Timeout: 20 * time.Millisecond})

	done := make(chan bool, 1)
	gate.RequestLocationPermission(func(granted bool) { done <- granted })

	select {
	case granted := <-done:
		assert.False(t, granted)
	case <-time.After(time.Second):
		t.Fatal("prompt timeout did not fire")
	}

	// The real answer arriving after the timeout is ignored.
	cb(true)
	select {
	case <-done:
		t.Fatal("late answer delivered after timeout")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestGateAbandonDropsAnswers(t *testing.T) {
	var cb func(bool)
	requester := mocks.NewMockRequester(t)
	requester.EXPECT().RequestRadioPowerOn(mock.Anything).
		Run(func(onResult func(bool)) { cb = onResult }).Once()

	gate := capability.NewGate(requester, capability.GateConfig{})

	var got answers
	gate.RequestRadioPowerOn(got.add)
	gate.Abandon()
	cb(true)

	assert.Empty(t, got.get())
	assert.False(t, gate.Outstanding(capability.PromptRadioPower))
}

func TestGateReportsPromptEvents(t *testing.T) {
	requester := mocks.NewMockRequester(t)
	requester.EXPECT().OpenLocationSettings().Return().Once()
	requester.EXPECT().RequestLocationPermission(mock.Anything).
		Run(func(onResult func(bool)) { onResult(false) }).Once()

	gate := capability.NewGate(requester, capability.GateConfig{})

	var events []capability.PromptEvent
	gate.OnPrompt(func(ev capability.PromptEvent) { events = append(events, ev) })

	gate.OpenLocationSettings()
	gate.RequestLocationPermission(func(bool) {})

	require.Len(t, events, 3)
	assert.Equal(t, capability.PromptLocationSettings, events[0].Prompt)
	assert.Equal(t, capability.OutcomeIssued, events[0].Outcome)
	assert.Equal(t, capability.OutcomeIssued, events[1].Outcome)
	assert.Equal(t, capability.OutcomeAnswered, events[2].Outcome)
	assert.False(t, events[2].Value)
}

func TestSafeRadioStateWithMockProbe(t *testing.T) {
	probe := mocks.NewMockProbe(t)
	probe.EXPECT().HasLocationPermission().Return(true).Once()
	probe.EXPECT().IsLocationServiceEnabled().Return(false).Once()
	probe.EXPECT().RadioPowerState().Return(capability.RadioOn).Once()

	snap := capability.Take(probe)
	assert.Equal(t, capability.Snapshot{
		LocationPermission: true,
		LocationService:    false,
		Radio:              capability.RadioOn,
	}, snap)
	assert.Equal(t, []capability.Capability{capability.LocationServiceEnabled}, snap.Missing())
}
