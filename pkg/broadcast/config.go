package broadcast

import (
	"errors"
	"fmt"

	"github.com/beaconsense/beacon-go/pkg/region"
	"github.com/google/uuid"
)

// Config errors.
var (
	ErrMissingUUID   = errors.New("broadcast requires a proximityUUID")
	ErrInvalidConfig = errors.New("invalid broadcast config")
)

// AdvertisingMode trades advertising frequency against power draw.
type AdvertisingMode uint8

const (
	ModeLowPower AdvertisingMode = iota
	ModeBalanced
	ModeLowLatency
)

// String returns the mode name.
func (m AdvertisingMode) String() string {
	switch m {
	case ModeLowPower:
		return "LOW_POWER"
	case ModeBalanced:
		return "BALANCED"
	case ModeLowLatency:
		return "LOW_LATENCY"
	default:
		return "UNKNOWN"
	}
}

// TxPowerLevel is the advertising transmit power level.
type TxPowerLevel uint8

const (
	TxPowerUltraLow TxPowerLevel = iota
	TxPowerLow
	TxPowerMedium
	TxPowerHigh
)

// String returns the power level name.
func (l TxPowerLevel) String() string {
	switch l {
	case TxPowerUltraLow:
		return "ULTRA_LOW"
	case TxPowerLow:
		return "LOW"
	case TxPowerMedium:
		return "MEDIUM"
	case TxPowerHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// DefaultTxPower is the measured power at one metre advertised when the
// caller does not supply one.
const DefaultTxPower = -59

// Config is the identity and radio settings of an advertisement.
type Config struct {
	Identifier    string    `json:"identifier" yaml:"identifier"`
	ProximityUUID uuid.UUID `json:"proximityUUID" yaml:"proximity_uuid"`
	Major         uint16    `json:"major" yaml:"major"`
	Minor         uint16    `json:"minor" yaml:"minor"`

	// TxPower is the calibrated RSSI at one metre, in dBm.
	TxPower int `json:"txPower" yaml:"tx_power"`

	AdvertisingMode         AdvertisingMode `json:"advertisingMode" yaml:"advertising_mode"`
	AdvertisingTxPowerLevel TxPowerLevel    `json:"advertisingTxPowerLevel" yaml:"advertising_tx_power_level"`
}

// DefaultConfig returns a config with default radio settings and no identity.
func DefaultConfig() Config {
	return Config{
		TxPower:                 DefaultTxPower,
		AdvertisingMode:         ModeLowLatency,
		AdvertisingTxPowerLevel: TxPowerHigh,
	}
}

// Validate checks the config.
func (c Config) Validate() error {
	if c.ProximityUUID == uuid.Nil {
		return ErrMissingUUID
	}
	if c.TxPower < -127 || c.TxPower > 20 {
		return fmt.Errorf("%w: txPower %d out of range -127..20", ErrInvalidConfig, c.TxPower)
	}
	if c.AdvertisingMode > ModeLowLatency {
		return fmt.Errorf("%w: advertisingMode %d", ErrInvalidConfig, c.AdvertisingMode)
	}
	if c.AdvertisingTxPowerLevel > TxPowerHigh {
		return fmt.Errorf("%w: advertisingTxPowerLevel %d", ErrInvalidConfig, c.AdvertisingTxPowerLevel)
	}
	return nil
}

// Parse builds a config from caller arguments. Missing radio settings take
// their defaults.
func Parse(args map[string]any) (Config, error) {
	c := DefaultConfig()

	if id, ok := args["identifier"].(string); ok {
		c.Identifier = id
	}

	raw, ok := args["proximityUUID"].(string)
	if !ok {
		return Config{}, ErrMissingUUID
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%w: proximityUUID: %v", ErrInvalidConfig, err)
	}
	c.ProximityUUID = id

	if v, ok := args["major"]; ok && v != nil {
		if c.Major, err = region.ToUint16(v); err != nil {
			return Config{}, fmt.Errorf("%w: major: %v", ErrInvalidConfig, err)
		}
	}
	if v, ok := args["minor"]; ok && v != nil {
		if c.Minor, err = region.ToUint16(v); err != nil {
			return Config{}, fmt.Errorf("%w: minor: %v", ErrInvalidConfig, err)
		}
	}
	if v, ok := args["txPower"]; ok && v != nil {
		if c.TxPower, err = region.ToInt(v); err != nil {
			return Config{}, fmt.Errorf("%w: txPower: %v", ErrInvalidConfig, err)
		}
	}
	if v, ok := args["advertisingMode"]; ok && v != nil {
		n, err := region.ToInt(v)
		if err != nil || n < 0 || n > int(ModeLowLatency) {
			return Config{}, fmt.Errorf("%w: advertisingMode %v", ErrInvalidConfig, v)
		}
		c.AdvertisingMode = AdvertisingMode(n)
	}
	if v, ok := args["advertisingTxPowerLevel"]; ok && v != nil {
		n, err := region.ToInt(v)
		if err != nil || n < 0 || n > int(TxPowerHigh) {
			return Config{}, fmt.Errorf("%w: advertisingTxPowerLevel %v", ErrInvalidConfig, v)
		}
		c.AdvertisingTxPowerLevel = TxPowerLevel(n)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
