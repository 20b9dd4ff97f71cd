package broadcast

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUUID = "2f234454-cf6d-4a0f-adf2-f4911ba9ffa6"

func TestParseDefaults(t *testing.T) {
	c, err := Parse(map[string]any{
		"identifier":    "me",
		"proximityUUID": testUUID,
		"major":         float64(10),
		"minor":         20,
	})
	require.NoError(t, err)

	assert.Equal(t, "me", c.Identifier)
	assert.Equal(t, uuid.MustParse(testUUID), c.ProximityUUID)
	assert.Equal(t, uint16(10), c.Major)
	assert.Equal(t, uint16(20), c.Minor)
	assert.Equal(t, DefaultTxPower, c.TxPower)
	assert.Equal(t, ModeLowLatency, c.AdvertisingMode)
	assert.Equal(t, TxPowerHigh, c.AdvertisingTxPowerLevel)
}

func TestParseRadioSettings(t *testing.T) {
	c, err := Parse(map[string]any{
		"proximityUUID":           testUUID,
		"txPower":                 -65,
		"advertisingMode":         0,
		"advertisingTxPowerLevel": 1,
	})
	require.NoError(t, err)

	assert.Equal(t, -65, c.TxPower)
	assert.Equal(t, ModeLowPower, c.AdvertisingMode)
	assert.Equal(t, TxPowerLow, c.AdvertisingTxPowerLevel)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want error
	}{
		{"missing uuid", map[string]any{"identifier": "x"}, ErrMissingUUID},
		{"bad uuid", map[string]any{"proximityUUID": "nope"}, ErrInvalidConfig},
		{"major range", map[string]any{"proximityUUID": testUUID, "major": 70000}, ErrInvalidConfig},
		{"mode range", map[string]any{"proximityUUID": testUUID, "advertisingMode": 3}, ErrInvalidConfig},
		{"level range", map[string]any{"proximityUUID": testUUID, "advertisingTxPowerLevel": 4}, ErrInvalidConfig},
		{"tx power range", map[string]any{"proximityUUID": testUUID, "txPower": 50}, ErrInvalidConfig},
		{"tx power type", map[string]any{"proximityUUID": testUUID, "txPower": "loud"}, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "BALANCED", ModeBalanced.String())
	assert.Equal(t, "UNKNOWN", AdvertisingMode(7).String())
	assert.Equal(t, "ULTRA_LOW", TxPowerUltraLow.String())
	assert.Equal(t, "MEDIUM", TxPowerMedium.String())
	assert.Equal(t, "UNKNOWN", TxPowerLevel(7).String())
}
