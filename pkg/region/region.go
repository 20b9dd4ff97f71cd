package region

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Region errors.
var (
	ErrMissingIdentifier = errors.New("region identifier is required")
	ErrInvalidUUID       = errors.New("invalid proximity UUID")
	ErrMajorWithoutUUID  = errors.New("major requires a proximity UUID")
	ErrMinorWithoutMajor = errors.New("minor requires a major")
	ErrInvalidArgument   = errors.New("invalid region argument")
)

// Region is a named beacon matching criterion.
type Region struct {
	// Identifier uniquely names the region within a session.
	Identifier string `json:"identifier" yaml:"identifier"`

	// ProximityUUID restricts matches to one beacon UUID. Nil matches any.
	ProximityUUID *uuid.UUID `json:"proximityUUID,omitempty" yaml:"proximity_uuid,omitempty"`

	// Major restricts matches to one major value.
	Major *uint16 `json:"major,omitempty" yaml:"major,omitempty"`

	// Minor restricts matches to one minor value.
	Minor *uint16 `json:"minor,omitempty" yaml:"minor,omitempty"`
}

// Validate checks the criteria hierarchy.
func (r Region) Validate() error {
	if strings.TrimSpace(r.Identifier) == "" {
		return ErrMissingIdentifier
	}
	if r.Major != nil && r.ProximityUUID == nil {
		return ErrMajorWithoutUUID
	}
	if r.Minor != nil && r.Major == nil {
		return ErrMinorWithoutMajor
	}
	return nil
}

// Matches reports whether b satisfies the region criteria.
func (r Region) Matches(b Beacon) bool {
	if r.ProximityUUID != nil && *r.ProximityUUID != b.ProximityUUID {
		return false
	}
	if r.Major != nil && *r.Major != b.Major {
		return false
	}
	if r.Minor != nil && *r.Minor != b.Minor {
		return false
	}
	return true
}

// Equal reports whether two regions carry the same identifier and criteria.
func (r Region) Equal(o Region) bool {
	if r.Identifier != o.Identifier {
		return false
	}
	if (r.ProximityUUID == nil) != (o.ProximityUUID == nil) ||
		(r.ProximityUUID != nil && *r.ProximityUUID != *o.ProximityUUID) {
		return false
	}
	return equalOptional(r.Major, o.Major) && equalOptional(r.Minor, o.Minor)
}

func equalOptional(a, b *uint16) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// String returns a compact description such as "office[uuid/1/2]".
func (r Region) String() string {
	var b strings.Builder
	b.WriteString(r.Identifier)
	if r.ProximityUUID == nil {
		return b.String()
	}
	b.WriteByte('[')
	b.WriteString(r.ProximityUUID.String())
	if r.Major != nil {
		fmt.Fprintf(&b, "/%d", *r.Major)
	}
	if r.Minor != nil {
		fmt.Fprintf(&b, "/%d", *r.Minor)
	}
	b.WriteByte(']')
	return b.String()
}

// New creates a region matching every beacon.
func New(identifier string) Region {
	return Region{Identifier: identifier}
}

// WithUUID returns a copy of r restricted to id.
func (r Region) WithUUID(id uuid.UUID) Region {
	r.ProximityUUID = &id
	return r
}

// WithMajor returns a copy of r restricted to major.
func (r Region) WithMajor(major uint16) Region {
	r.Major = &major
	return r
}

// WithMinor returns a copy of r restricted to minor.
func (r Region) WithMinor(minor uint16) Region {
	r.Minor = &minor
	return r
}

// Parse builds a region from caller arguments with the keys identifier,
// proximityUUID, major and minor. Numbers may arrive as any integer or float
// type, as produced by JSON decoding.
func Parse(args map[string]any) (Region, error) {
	var r Region

	id, ok := args["identifier"].(string)
	if !ok {
		return Region{}, ErrMissingIdentifier
	}
	r.Identifier = id

	if raw, ok := args["proximityUUID"]; ok && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return Region{}, fmt.Errorf("%w: proximityUUID must be a string", ErrInvalidArgument)
		}
		parsed, err := uuid.Parse(s)
		if err != nil {
			return Region{}, fmt.Errorf("%w: %v", ErrInvalidUUID, err)
		}
		r.ProximityUUID = &parsed
	}

	for _, key := range []string{"major", "minor"} {
		raw, ok := args[key]
		if !ok || raw == nil {
			continue
		}
		v, err := ToUint16(raw)
		if err != nil {
			return Region{}, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, key, err)
		}
		if key == "major" {
			r.Major = &v
		} else {
			r.Minor = &v
		}
	}

	if err := r.Validate(); err != nil {
		return Region{}, err
	}
	return r, nil
}

// ParseList builds regions from a list of argument maps.
func ParseList(args []any) ([]Region, error) {
	regions := make([]Region, 0, len(args))
	for i, raw := range args {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: region %d is not an object", ErrInvalidArgument, i)
		}
		r, err := Parse(m)
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
		regions = append(regions, r)
	}
	return regions, nil
}

// ToMap returns the caller argument form of r.
func (r Region) ToMap() map[string]any {
	m := map[string]any{"identifier": r.Identifier}
	if r.ProximityUUID != nil {
		m["proximityUUID"] = r.ProximityUUID.String()
	}
	if r.Major != nil {
		m["major"] = int(*r.Major)
	}
	if r.Minor != nil {
		m["minor"] = int(*r.Minor)
	}
	return m
}

// ToUint16 converts a decoded numeric argument to uint16.
func ToUint16(raw any) (uint16, error) {
	n, err := ToInt(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 0xFFFF {
		return 0, fmt.Errorf("value %d out of range 0..65535", n)
	}
	return uint16(n), nil
}

// ToInt converts a decoded numeric argument to int.
func ToInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("value %v is not an integer", v)
		}
		return int(v), nil
	case float32:
		if v != float32(int(v)) {
			return 0, fmt.Errorf("value %v is not an integer", v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("unsupported type %T", raw)
	}
}
