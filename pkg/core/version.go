package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is an immutable major.minor.patch triple, totally ordered
// lexicographically. Every bump produces a new Version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a strict "major.minor.patch" string of non-negative
// decimal integers. Anything else wraps ErrMalformedVersion.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q", ErrMalformedVersion, s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || (len(p) > 1 && p[0] == '0') {
			return Version{}, fmt.Errorf("%w: %q", ErrMalformedVersion, s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1 ordering v against o on (major, minor, patch).
func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		return cmpInt(v.Major, o.Major)
	case v.Minor != o.Minor:
		return cmpInt(v.Minor, o.Minor)
	default:
		return cmpInt(v.Patch, o.Patch)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// BumpMajor returns (major+1, 0, 0).
func (v Version) BumpMajor() Version { return Version{Major: v.Major + 1} }

// BumpMinor returns (major, minor+1, 0).
func (v Version) BumpMinor() Version { return Version{Major: v.Major, Minor: v.Minor + 1} }

// BumpPatch returns (major, minor, patch+1).
func (v Version) BumpPatch() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// Decision is the outcome of the version gate.
type Decision struct {
	// Accepted is true when current is already a valid bump of the baseline.
	Accepted bool
	// Target is the patch-bumped baseline to move to when not accepted.
	Target Version
}

// Decide classifies current against baseline. The only valid successors of a
// baseline are its three bumps; anything else, including an unchanged version
// or an arbitrary jump, requires moving to the patch-bumped baseline.
func Decide(current, baseline Version) Decision {
	switch current {
	case baseline.BumpMajor(), baseline.BumpMinor(), baseline.BumpPatch():
		return Decision{Accepted: true}
	}
	return Decision{Target: baseline.BumpPatch()}
}
