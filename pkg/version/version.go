// Package version holds the release and file format versions of the
// bonjour tools.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the release version of the bonjour tools.
const Current = "0.4"

// ConfigFormat is the newest configuration file format this release reads.
const ConfigFormat = "1.0"

// Version is a parsed "major.minor" version.
type Version struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (Version, error) {
	majorStr, minorStr, ok := strings.Cut(s, ".")
	if !ok || strings.Contains(minorStr, ".") {
		return Version{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(majorStr, 10, 16)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(minorStr, 10, 16)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return Version{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v Version) Compatible(other Version) bool {
	return v.Major == other.Major
}

// Reads reports whether a reader at version v understands a file written
// at version other: same major, and no newer minor.
func (v Version) Reads(other Version) bool {
	return v.Compatible(other) && other.Minor <= v.Minor
}

// CheckConfig validates the format version declared by a configuration
// file. An empty string means the file predates versioning and is accepted.
func CheckConfig(declared string) error {
	if declared == "" {
		return nil
	}
	v, err := Parse(declared)
	if err != nil {
		return err
	}
	supported, _ := Parse(ConfigFormat)
	if !supported.Reads(v) {
		return fmt.Errorf("config format %s not supported (this release reads %s)", v, supported)
	}
	return nil
}
