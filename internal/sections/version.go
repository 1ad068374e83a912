// Package sections implements the versioned section store: append-only
// content-block history addressed by (type, key, flavor, version) with a
// single current version per address.
package sections

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a two-part major.minor version. Minor is a full integer, not a
// decimal digit: "1.9" bumps to "1.10", never to "2.0".
type Version struct {
	Major int
	Minor int
}

// InitialVersion is assigned to the first row of every address
var InitialVersion = Version{Major: 1, Minor: 0}

// ParseVersion parses a "major.minor" string
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return Version{}, &ErrInvalidVersion{Version: s, Reason: "want major.minor"}
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, &ErrInvalidVersion{Version: s, Reason: "major is not an integer"}
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, &ErrInvalidVersion{Version: s, Reason: "minor is not an integer"}
	}
	if major < 0 || minor < 0 {
		return Version{}, &ErrInvalidVersion{Version: s, Reason: "negative component"}
	}
	return Version{Major: major, Minor: minor}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// BumpMinor returns the next minor version. Updates never change major.
func (v Version) BumpMinor() Version {
	return Version{Major: v.Major, Minor: v.Minor + 1}
}

// Compare returns -1, 0, or 1 ordering v against other
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}
	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}
	return 0
}
