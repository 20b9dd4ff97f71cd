// Package version provides bridge protocol version parsing, comparison, and
// websocket subprotocol helpers.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the bridge protocol version implemented by this library.
const Current = "1.0"

// subprotocolPrefix prefixes the major version in websocket subprotocols.
const subprotocolPrefix = "beacon/"

// ProtocolVersion represents a parsed "major.minor" protocol version.
type ProtocolVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (ProtocolVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return ProtocolVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return ProtocolVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return ProtocolVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return ProtocolVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v ProtocolVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v ProtocolVersion) Compatible(other ProtocolVersion) bool {
	return v.Major == other.Major
}

// Subprotocol returns the websocket subprotocol for a major version: "beacon/N".
func Subprotocol(major uint16) string {
	return fmt.Sprintf("%s%d", subprotocolPrefix, major)
}

// MajorFromSubprotocol extracts the major version from a websocket
// subprotocol string.
func MajorFromSubprotocol(proto string) (uint16, error) {
	if !strings.HasPrefix(proto, subprotocolPrefix) {
		return 0, fmt.Errorf("not a beacon subprotocol: %q", proto)
	}

	suffix := proto[len(subprotocolPrefix):]
	if suffix == "" {
		return 0, fmt.Errorf("empty major version in subprotocol: %q", proto)
	}

	major, err := strconv.ParseUint(suffix, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid major version in subprotocol %q: %w", proto, err)
	}

	return uint16(major), nil
}

// SupportedSubprotocols returns the websocket subprotocols for all supported
// major versions. Currently only major version 1.
func SupportedSubprotocols() []string {
	current, _ := Parse(Current)
	return []string{Subprotocol(current.Major)}
}

// Negotiate picks the first offered subprotocol this library supports.
// A client offering nothing is accepted with an empty result; ok is false
// only when every offered subprotocol is unsupported.
func Negotiate(offered []string) (proto string, ok bool) {
	if len(offered) == 0 {
		return "", true
	}
	current, _ := Parse(Current)
	for _, p := range offered {
		major, err := MajorFromSubprotocol(p)
		if err != nil {
			continue
		}
		if (ProtocolVersion{Major: major}).Compatible(current) {
			return p, true
		}
	}
	return "", false
}
