package orchestrator

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/beaconsense/beacon-go/pkg/broadcast"
	"github.com/beaconsense/beacon-go/pkg/pending"
	"github.com/beaconsense/beacon-go/pkg/region"
	"github.com/beaconsense/beacon-go/pkg/sensing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{ErrNotAttached, KindNotAttached},
		{fmt.Errorf("wrapped: %w", ErrPermissionDenied), KindPermissionDenied},
		{ErrServiceDisabled, KindServiceDisabled},
		{ErrCapabilityUnsupported, KindCapabilityUnsupported},
		{broadcast.ErrUnsupported, KindCapabilityUnsupported},
		{fmt.Errorf("%w: refused", ErrEngineBindFailed), KindEngineBindFailed},
		{sensing.ErrNotBound, KindEngineBindFailed},
		{ErrUnimplemented, KindUnimplemented},
		{pending.ErrSuperseded, KindSuperseded},
		{ErrTornDown, KindTornDown},
		{region.ErrMissingIdentifier, KindInvalidArgument},
		{broadcast.ErrMissingUUID, KindInvalidArgument},
		{sensing.ErrInvalidScanPeriod, KindInvalidArgument},
		{errors.New("something else"), KindEngineFailure},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.err), "KindOf(%v)", tt.err)
	}
}

func TestFailureJSON(t *testing.T) {
	f := FailureOf(fmt.Errorf("%w: user said no", ErrPermissionDenied))

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"PermissionDenied","message":"location permission denied: user said no"}`, string(data))
	assert.Equal(t, "PermissionDenied: location permission denied: user said no", f.Error())

	var back Failure
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, f, back)

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("Bogus")))
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.SessionID)

	bad := cfg
	bad.PromptTimeout = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = cfg
	bad.ForegroundScanPeriod = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = cfg
	bad.RestoreMonitoring = true
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
}
