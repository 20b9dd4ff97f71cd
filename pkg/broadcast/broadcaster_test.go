package broadcast_test

import (
	"errors"
	"testing"

	"github.com/beaconsense/beacon-go/pkg/broadcast"
	"github.com/beaconsense/beacon-go/pkg/broadcast/mocks"
	capmocks "github.com/beaconsense/beacon-go/pkg/capability/mocks"
	"github.com/beaconsense/beacon-go/pkg/pending"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() broadcast.Config {
	c := broadcast.DefaultConfig()
	c.ProximityUUID = uuid.MustParse("2f234454-cf6d-4a0f-adf2-f4911ba9ffa6")
	c.Major = 1
	return c
}

func TestStartUnsupported(t *testing.T) {
	probe := capmocks.NewMockProbe(t)
	probe.EXPECT().IsBroadcastCapable().Return(false).Once()
	adv := mocks.NewMockAdvertiser(t)

	b := broadcast.New(adv, probe, broadcast.Options{})
	req := b.Start(testConfig())

	res, ok := req.Result()
	require.True(t, ok)
	assert.ErrorIs(t, res.Err, broadcast.ErrUnsupported)
	assert.Equal(t, pending.ClassBroadcast, req.Class())
}

func TestStartInvalidConfig(t *testing.T) {
	b := broadcast.New(mocks.NewMockAdvertiser(t), capmocks.NewMockProbe(t), broadcast.Options{})

	res, ok := b.Start(broadcast.Config{}).Result()
	require.True(t, ok)
	assert.ErrorIs(t, res.Err, broadcast.ErrMissingUUID)
}

func TestStartResolvesOnConfirmation(t *testing.T) {
	probe := capmocks.NewMockProbe(t)
	probe.EXPECT().IsBroadcastCapable().Return(true)
	adv := mocks.NewMockAdvertiser(t)

	var confirm func(error)
	adv.EXPECT().StartAdvertising(testConfig(), mock.Anything).
		Run(func(_ broadcast.Config, onResult func(error)) { confirm = onResult }).Once()

	b := broadcast.New(adv, probe, broadcast.Options{})
	req := b.Start(testConfig())
	assert.False(t, req.IsSettled())

	confirm(nil)

	res, ok := req.Result()
	require.True(t, ok)
	assert.NoError(t, res.Err)
	assert.True(t, res.Value)

	cur, ok := b.Current()
	require.True(t, ok)
	assert.Equal(t, uint16(1), cur.Major)
}

func TestStartAdvertiserFailure(t *testing.T) {
	probe := capmocks.NewMockProbe(t)
	probe.EXPECT().IsBroadcastCapable().Return(true)
	adv := mocks.NewMockAdvertiser(t)
	adv.EXPECT().StartAdvertising(mock.Anything, mock.Anything).
		Run(func(_ broadcast.Config, onResult func(error)) { onResult(errors.New("too many advertisers")) }).Once()

	b := broadcast.New(adv, probe, broadcast.Options{})
	res, ok := b.Start(testConfig()).Result()
	require.True(t, ok)
	assert.ErrorIs(t, res.Err, broadcast.ErrAdvertise)

	_, ok = b.Current()
	assert.False(t, ok)
}

func TestSecondStartSupersedesFirst(t *testing.T) {
	probe := capmocks.NewMockProbe(t)
	probe.EXPECT().IsBroadcastCapable().Return(true)
	adv := mocks.NewMockAdvertiser(t)

	var confirms []func(error)
	adv.EXPECT().StartAdvertising(mock.Anything, mock.Anything).
		Run(func(_ broadcast.Config, onResult func(error)) { confirms = append(confirms, onResult) }).Twice()

	b := broadcast.New(adv, probe, broadcast.Options{})
	first := b.Start(testConfig())
	second := b.Start(testConfig())

	res, ok := first.Result()
	require.True(t, ok)
	assert.ErrorIs(t, res.Err, pending.ErrSuperseded)

	// The superseded confirmation must not settle the live request.
	confirms[0](nil)
	assert.False(t, second.IsSettled())

	confirms[1](nil)
	res, ok = second.Result()
	require.True(t, ok)
	assert.True(t, res.Value)
}

func TestStopFailsUnconfirmedStart(t *testing.T) {
	probe := capmocks.NewMockProbe(t)
	probe.EXPECT().IsBroadcastCapable().Return(true)
	adv := mocks.NewMockAdvertiser(t)
	adv.EXPECT().StartAdvertising(mock.Anything, mock.Anything).Return().Once()
	adv.EXPECT().IsAdvertising().Return(false).Once()

	b := broadcast.New(adv, probe, broadcast.Options{})
	req := b.Start(testConfig())

	require.NoError(t, b.Stop())
	res, ok := req.Result()
	require.True(t, ok)
	assert.ErrorIs(t, res.Err, broadcast.ErrStopped)
}

func TestStopWhileAdvertising(t *testing.T) {
	probe := capmocks.NewMockProbe(t)
	probe.EXPECT().IsBroadcastCapable().Return(true)
	adv := mocks.NewMockAdvertiser(t)
	adv.EXPECT().StartAdvertising(mock.Anything, mock.Anything).
		Run(func(_ broadcast.Config, onResult func(error)) { onResult(nil) }).Once()
	adv.EXPECT().StopAdvertising().Return(nil).Once()
	adv.EXPECT().IsAdvertising().Return(false).Once()

	b := broadcast.New(adv, probe, broadcast.Options{})
	b.Start(testConfig())

	require.NoError(t, b.Stop())
	assert.False(t, b.IsBroadcasting())
}
