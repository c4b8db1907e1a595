// Package version implements semantic versions and constraints for
// inter-module compatibility checks. Comparison deliberately simplifies
// full semver: prerelease identifiers compare as plain strings rather
// than per-segment, and build metadata never participates.
package version

import (
	"fmt"
	"strings"

	"github.com/blang/semver/v4"
)

// SemanticVersion is a parsed `v?MAJOR.MINOR.PATCH(-prerelease)?(+build)?`.
type SemanticVersion struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease string
	Build      string
}

func (v SemanticVersion) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// ParseError reports a malformed version string.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid version %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses a semantic version, accepting an optional leading "v".
func Parse(input string) (SemanticVersion, error) {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "v")
	parsed, err := semver.Parse(s)
	if err != nil {
		return SemanticVersion{}, &ParseError{Input: input, Err: err}
	}
	v := SemanticVersion{
		Major: parsed.Major,
		Minor: parsed.Minor,
		Patch: parsed.Patch,
		Build: strings.Join(parsed.Build, "."),
	}
	if len(parsed.Pre) > 0 {
		pre := make([]string, len(parsed.Pre))
		for i, p := range parsed.Pre {
			pre[i] = p.String()
		}
		v.Prerelease = strings.Join(pre, ".")
	}
	return v, nil
}

// Compare orders two versions: the (major, minor, patch) triple
// lexicographically, then prerelease. At an equal triple a version with
// a prerelease sorts below the same version without one; two
// prereleases compare as plain strings.
func Compare(a, b SemanticVersion) int {
	if c := compareUint(a.Major, b.Major); c != 0 {
		return c
	}
	if c := compareUint(a.Minor, b.Minor); c != 0 {
		return c
	}
	if c := compareUint(a.Patch, b.Patch); c != 0 {
		return c
	}
	switch {
	case a.Prerelease == "" && b.Prerelease != "":
		return 1
	case a.Prerelease != "" && b.Prerelease == "":
		return -1
	}
	return strings.Compare(a.Prerelease, b.Prerelease)
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
