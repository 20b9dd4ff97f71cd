package sensing_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/beaconsense/beacon-go/pkg/eventhub"
	"github.com/beaconsense/beacon-go/pkg/region"
	"github.com/beaconsense/beacon-go/pkg/sensing"
	"github.com/beaconsense/beacon-go/pkg/sensing/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	engine    *mocks.MockEngine
	hub       *eventhub.Hub
	lifecycle *sensing.Lifecycle

	mu      sync.Mutex
	pending []func(error)
}

func newFixture(t *testing.T, cfg sensing.Config) *fixture {
	t.Helper()
	f := &fixture{
		engine: mocks.NewMockEngine(t),
		hub:    eventhub.NewHub(),
	}
	f.engine.EXPECT().SetNotifier(mock.Anything).Return().Once()
	f.engine.EXPECT().Bind(mock.Anything).Run(func(onBound func(error)) {
		f.mu.Lock()
		f.pending = append(f.pending, onBound)
		f.mu.Unlock()
	}).Maybe()
	f.lifecycle = sensing.NewLifecycle(f.engine, f.hub, cfg)
	return f
}

// completeBind finishes the i-th engine bind call.
func (f *fixture) completeBind(t *testing.T, i int, err error) {
	t.Helper()
	f.mu.Lock()
	require.Greater(t, len(f.pending), i, "engine bind %d not issued", i)
	fn := f.pending[i]
	f.mu.Unlock()
	fn(err)
}

func (f *fixture) bindCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

func (f *fixture) bound(t *testing.T) {
	t.Helper()
	f.lifecycle.Bind(nil)
	f.completeBind(t, f.bindCalls()-1, nil)
	require.True(t, f.lifecycle.IsBound())
}

func TestBindCompletesAsynchronously(t *testing.T) {
	f := newFixture(t, sensing.Config{})

	var transitions []string
	f.lifecycle.OnStateChange(func(old, cur sensing.BindState) {
		transitions = append(transitions, old.String()+"->"+cur.String())
	})

	var results []error
	f.lifecycle.Bind(func(err error) { results = append(results, err) })
	assert.Equal(t, sensing.StateBinding, f.lifecycle.State())
	assert.Empty(t, results)

	f.completeBind(t, 0, nil)

	assert.Equal(t, sensing.StateBound, f.lifecycle.State())
	assert.Equal(t, []error{nil}, results)
	assert.Equal(t, []string{"UNBOUND->BINDING", "BINDING->BOUND"}, transitions)
}

func TestBindSharesInFlightAttempt(t *testing.T) {
	f := newFixture(t, sensing.Config{})

	var calls int
	f.lifecycle.Bind(func(error) { calls++ })
	f.lifecycle.Bind(func(error) { calls++ })
	assert.Equal(t, 1, f.bindCalls())

	f.completeBind(t, 0, nil)
	assert.Equal(t, 2, calls)

	// Already bound: immediate success, no new engine bind.
	f.lifecycle.Bind(func(err error) {
		assert.NoError(t, err)
		calls++
	})
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, f.bindCalls())
}

func TestBindFailureLeavesUnbound(t *testing.T) {
	f := newFixture(t, sensing.Config{})

	var got error
	f.lifecycle.Bind(func(err error) { got = err })
	f.completeBind(t, 0, errors.New("service refused"))

	assert.ErrorIs(t, got, sensing.ErrEngine)
	assert.Equal(t, sensing.StateUnbound, f.lifecycle.State())
}

func TestUnbindCancelsInFlightBind(t *testing.T) {
	f := newFixture(t, sensing.Config{})
	f.engine.EXPECT().Unbind().Return().Once()

	var got error
	f.lifecycle.Bind(func(err error) { got = err })
	f.lifecycle.Unbind()

	assert.ErrorIs(t, got, sensing.ErrBindCanceled)

	// The stale completion must not flip the state to bound.
	f.completeBind(t, 0, nil)
	assert.Equal(t, sensing.StateUnbound, f.lifecycle.State())
}

func TestStartRequiresBind(t *testing.T) {
	f := newFixture(t, sensing.Config{})

	err := f.lifecycle.StartRanging(region.New("r1"))
	assert.ErrorIs(t, err, sensing.ErrNotBound)
	err = f.lifecycle.StartMonitoring(region.New("r1"))
	assert.ErrorIs(t, err, sensing.ErrNotBound)
	assert.Empty(t, f.lifecycle.RangingRegions())
}

func TestStartRejectsInvalidRegion(t *testing.T) {
	f := newFixture(t, sensing.Config{})
	f.bound(t)

	err := f.lifecycle.StartRanging(region.Region{})
	assert.ErrorIs(t, err, region.ErrMissingIdentifier)
}

func TestRangingStartStop(t *testing.T) {
	f := newFixture(t, sensing.Config{})
	f.bound(t)

	r := region.New("office").WithUUID(uuid.MustParse("2f234454-cf6d-4a0f-adf2-f4911ba9ffa6"))
	f.engine.EXPECT().StartRanging(r).Return(nil).Once()
	f.engine.EXPECT().StopRanging(r).Return(nil).Once()

	require.NoError(t, f.lifecycle.StartRanging(r))
	// Same criteria again is a no-op.
	require.NoError(t, f.lifecycle.StartRanging(r))
	assert.Equal(t, []region.Region{r}, f.lifecycle.RangingRegions())

	require.NoError(t, f.lifecycle.StopRanging(region.New("office")))
	// Stopping twice is a no-op.
	require.NoError(t, f.lifecycle.StopRanging(region.New("office")))
	assert.Empty(t, f.lifecycle.RangingRegions())
}

func TestEngineStartErrorNotTracked(t *testing.T) {
	f := newFixture(t, sensing.Config{})
	f.bound(t)

	r := region.New("r1")
	f.engine.EXPECT().StartMonitoring(r).Return(errors.New("radio busy")).Once()

	err := f.lifecycle.StartMonitoring(r)
	assert.ErrorIs(t, err, sensing.ErrEngine)
	assert.Empty(t, f.lifecycle.MonitoredRegions())
}

func TestRangingResultsFilteredToWatchedRegions(t *testing.T) {
	f := newFixture(t, sensing.Config{})
	f.bound(t)

	id := uuid.MustParse("2f234454-cf6d-4a0f-adf2-f4911ba9ffa6")
	r := region.New("office").WithUUID(id)
	f.engine.EXPECT().StartRanging(r).Return(nil).Once()
	require.NoError(t, f.lifecycle.StartRanging(r))

	var got []region.RangingResult
	f.hub.Ranging.Subscribe(func(res region.RangingResult) { got = append(got, res) })

	match := region.Beacon{ProximityUUID: id, Major: 1, Minor: 2}
	other := region.Beacon{ProximityUUID: uuid.New(), Major: 1, Minor: 2}
	f.lifecycle.DidRangeBeacons(r, []region.Beacon{match, other})
	f.lifecycle.DidRangeBeacons(region.New("unknown"), []region.Beacon{match})

	require.Len(t, got, 1)
	assert.Equal(t, "office", got[0].Region.Identifier)
	assert.Equal(t, []region.Beacon{match}, got[0].Beacons)
}

func TestMonitoringTransitionsPushed(t *testing.T) {
	f := newFixture(t, sensing.Config{})
	f.bound(t)

	r := region.New("lobby")
	f.engine.EXPECT().StartMonitoring(r).Return(nil).Once()
	require.NoError(t, f.lifecycle.StartMonitoring(r))

	var got []region.MonitoringEvent
	f.hub.Monitoring.Subscribe(func(ev region.MonitoringEvent) { got = append(got, ev) })

	f.lifecycle.DidDetermineState(r, region.StateInside)
	f.lifecycle.DidExitRegion(r)
	f.lifecycle.DidEnterRegion(r)
	f.lifecycle.DidEnterRegion(region.New("elsewhere"))

	require.Len(t, got, 3)
	assert.Equal(t, region.DidDetermineState, got[0].Transition)
	assert.Equal(t, region.StateInside, got[0].State)
	assert.Equal(t, region.DidExit, got[1].Transition)
	assert.Equal(t, region.DidEnter, got[2].Transition)
}

func TestScanPeriodsAppliedAfterBind(t *testing.T) {
	f := newFixture(t, sensing.Config{})

	p := sensing.ScanPeriods{Foreground: 500 * time.Millisecond, ForegroundBetween: 2 * time.Second}
	require.NoError(t, f.lifecycle.SetScanPeriods(p))
	assert.Equal(t, p, f.lifecycle.ScanPeriods())

	f.engine.EXPECT().SetScanPeriods(p).Return(nil).Once()
	f.bound(t)
}

func TestScanPeriodsValidated(t *testing.T) {
	f := newFixture(t, sensing.Config{})

	assert.Equal(t, sensing.DefaultScanPeriods(), f.lifecycle.ScanPeriods())
	err := f.lifecycle.SetScanPeriods(sensing.ScanPeriods{})
	assert.ErrorIs(t, err, sensing.ErrInvalidScanPeriod)
	err = f.lifecycle.SetScanPeriods(sensing.ScanPeriods{Foreground: time.Second, ForegroundBetween: -1})
	assert.ErrorIs(t, err, sensing.ErrInvalidScanPeriod)
}

func TestScanPeriodsEngineRejection(t *testing.T) {
	f := newFixture(t, sensing.Config{})
	f.bound(t)

	p := sensing.ScanPeriods{Foreground: time.Second}
	f.engine.EXPECT().SetScanPeriods(p).Return(errors.New("rejected")).Once()
	assert.ErrorIs(t, f.lifecycle.SetScanPeriods(p), sensing.ErrEngine)
}

func TestTeardownIdempotent(t *testing.T) {
	f := newFixture(t, sensing.Config{})
	f.bound(t)

	ranged := region.New("a")
	monitored := region.New("b")
	f.engine.EXPECT().StartRanging(ranged).Return(nil).Once()
	f.engine.EXPECT().StartMonitoring(monitored).Return(nil).Once()
	f.engine.EXPECT().StopRanging(ranged).Return(nil).Once()
	f.engine.EXPECT().StopMonitoring(monitored).Return(nil).Once()
	f.engine.EXPECT().Unbind().Return().Once()

	require.NoError(t, f.lifecycle.StartRanging(ranged))
	require.NoError(t, f.lifecycle.StartMonitoring(monitored))

	require.NoError(t, f.lifecycle.Teardown())
	require.NoError(t, f.lifecycle.Teardown())

	assert.Equal(t, sensing.StateUnbound, f.lifecycle.State())
	assert.Empty(t, f.lifecycle.RangingRegions())
	assert.Empty(t, f.lifecycle.MonitoredRegions())
}

func TestCloseRejectsBind(t *testing.T) {
	f := newFixture(t, sensing.Config{})

	require.NoError(t, f.lifecycle.Close())
	var got error
	f.lifecycle.Bind(func(err error) { got = err })
	assert.ErrorIs(t, got, sensing.ErrClosed)
	assert.Equal(t, 0, f.bindCalls())
}

func TestServiceDisconnectClearsState(t *testing.T) {
	f := newFixture(t, sensing.Config{})
	f.bound(t)

	r := region.New("a")
	f.engine.EXPECT().StartRanging(r).Return(nil).Once()
	require.NoError(t, f.lifecycle.StartRanging(r))

	f.lifecycle.ServiceDisconnected()

	assert.Equal(t, sensing.StateUnbound, f.lifecycle.State())
	assert.Empty(t, f.lifecycle.RangingRegions())

	// A rebind starts a fresh engine bind.
	f.lifecycle.Bind(nil)
	assert.Equal(t, 2, f.bindCalls())
}

func TestMonitoredRegionsPersisted(t *testing.T) {
	store := mocks.NewMockStore(t)
	f := newFixture(t, sensing.Config{Store: store})
	f.bound(t)

	r := region.New("lobby")
	f.engine.EXPECT().StartMonitoring(r).Return(nil).Once()
	f.engine.EXPECT().StopMonitoring(r).Return(nil).Once()
	store.EXPECT().SaveMonitoredRegions([]region.Region{r}).Return(nil).Once()
	store.EXPECT().SaveMonitoredRegions([]region.Region{}).Return(nil).Once()

	require.NoError(t, f.lifecycle.StartMonitoring(r))
	require.NoError(t, f.lifecycle.StopMonitoring(r))
}

func TestBindStateString(t *testing.T) {
	assert.Equal(t, "UNBOUND", sensing.StateUnbound.String())
	assert.Equal(t, "BINDING", sensing.StateBinding.String())
	assert.Equal(t, "BOUND", sensing.StateBound.String())
	assert.Equal(t, "CLOSED", sensing.StateClosed.String())
	assert.Equal(t, "UNKNOWN", sensing.BindState(9).String())
}
