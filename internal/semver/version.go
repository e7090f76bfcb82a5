package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Version is a version identifier as it appears in a changelog: either a
// semver.org compatible version or the "Unreleased" sentinel.
//
// Version is comparable and is used directly as a map key. Two values are
// equal only if every field matches, including build metadata and the text
// as it was supplied, so "1.0" and "1.0.0" are distinct keys.
//
// Major, Minor and Patch hold the decimal digits as written (missing parts
// are "0"), so components of any length compare correctly.
type Version struct {
	Major      string
	Minor      string
	Patch      string
	PreRelease string
	Build      string

	text       string
	precision  int
	unreleased bool
}

// UnreleasedText is the canonical spelling of the Unreleased sentinel.
const UnreleasedText = "Unreleased"

// Unreleased is the sentinel version that sorts above every concrete version.
var Unreleased = Version{text: UnreleasedText, unreleased: true}

var (
	// versionRegex matches major[.minor[.patch]][-prerelease][+build].
	// Numeric parts are "0" or carry no leading zero.
	// It captures:
	//   1. Major version
	//   2. (optional) Minor version
	//   3. (optional) Patch version
	//   4. (optional) Pre-release identifiers
	//   5. (optional) Build metadata
	versionRegex = regexp.MustCompile(
		`^(0|[1-9][0-9]*)(?:\.(0|[1-9][0-9]*)(?:\.(0|[1-9][0-9]*))?)?` + // major[.minor[.patch]]
			`(?:-((?:0|[1-9][0-9]*|[0-9A-Za-z][-0-9A-Za-z]*)(?:\.(?:0|[1-9][0-9]*|[0-9A-Za-z][-0-9A-Za-z]*))*))?` + // optional pre-release
			`(?:\+([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`, // optional build metadata
	)

	// ErrInvalidVersion is returned when a string is neither a valid
	// version nor "unreleased".
	ErrInvalidVersion = errors.New("invalid version")
)

// maxVersionLength is the maximum allowed length for a version string.
// This prevents potential ReDoS attacks on the regex parser.
const maxVersionLength = 128

// Parse parses a version string.
//
// Supported formats:
//   - "1", "1.2", "1.2.3" (minor and patch default to 0)
//   - "1.2.3-alpha.1" (with pre-release identifier)
//   - "1.2.3+build.123" (with build metadata)
//   - "unreleased" in any letter case
//
// A version whose major, minor and patch are all zero is rejected.
func Parse(s string) (Version, error) {
	if len(s) > maxVersionLength {
		return Version{}, fmt.Errorf("%w: version string exceeds maximum length of %d", ErrInvalidVersion, maxVersionLength)
	}
	if strings.EqualFold(s, UnreleasedText) {
		return Unreleased, nil
	}

	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return Version{}, invalid(s)
	}

	v := Version{
		Major:      matches[1],
		Minor:      "0",
		Patch:      "0",
		PreRelease: matches[4],
		Build:      matches[5],
		text:       s,
		precision:  1,
	}
	if matches[2] != "" {
		v.precision = 2
		v.Minor = matches[2]
	}
	if matches[3] != "" {
		v.precision = 3
		v.Patch = matches[3]
	}

	if v.Major == "0" && v.Minor == "0" && v.Patch == "0" {
		return Version{}, invalid(s)
	}

	return v, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level values.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func invalid(s string) error {
	return fmt.Errorf("%w: %q", ErrInvalidVersion, s)
}

// String returns the version text as it was supplied.
func (v Version) String() string {
	return v.text
}

// IsUnreleased reports whether v is the Unreleased sentinel.
func (v Version) IsUnreleased() bool {
	return v.unreleased
}

// IsZero reports whether v is the zero value (never produced by Parse).
func (v Version) IsZero() bool {
	return v == Version{}
}

// Numeric returns the major.minor.patch part using the precision the
// version was written with: "1", "1.2" or "1.2.3".
func (v Version) Numeric() string {
	if v.unreleased {
		return v.text
	}
	parts := []string{v.Major, v.Minor, v.Patch}
	return strings.Join(parts[:v.precision], ".")
}

// ContainsSnapshot reports whether the version text contains "SNAPSHOT"
// in any letter case, anywhere in the string.
func (v Version) ContainsSnapshot() bool {
	return strings.Contains(strings.ToUpper(v.text), "SNAPSHOT")
}

// Equal reports whether v and other are identical, build metadata included.
func (v Version) Equal(other Version) bool {
	return v == other
}

// Compare compares two versions.
// It returns -1 if v < other, 0 if v == other, and +1 if v > other.
// Unreleased is greater than every concrete version. Pre-release versions
// have lower precedence than the associated normal version
// (e.g., 1.0.0-alpha < 1.0.0). Build metadata is ignored.
func (v Version) Compare(other Version) int {
	switch {
	case v.unreleased && other.unreleased:
		return 0
	case v.unreleased:
		return 1
	case other.unreleased:
		return -1
	}

	if c := compareNumeric(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareNumeric(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareNumeric(v.Patch, other.Patch); c != 0 {
		return c
	}

	switch {
	case v.PreRelease == "" && other.PreRelease == "":
		return 0
	case v.PreRelease == "":
		return 1
	case other.PreRelease == "":
		return -1
	default:
		return comparePreRelease(v.PreRelease, other.PreRelease)
	}
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Compare is the package-level form of Version.Compare, suitable for
// slices.SortFunc.
func Compare(a, b Version) int {
	return a.Compare(b)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareNumeric compares two decimal digit strings without leading zeros:
// the longer one is larger, equal lengths compare lexically.
func compareNumeric(a, b string) int {
	if c := compareInt(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func comparePreRelease(a, b string) int {
	aIDs := strings.Split(a, ".")
	bIDs := strings.Split(b, ".")

	n := min(len(aIDs), len(bIDs))
	for i := range n {
		if c := compareIdentifier(aIDs[i], bIDs[i]); c != 0 {
			return c
		}
	}

	// If equal so far, shorter list has lower precedence.
	return compareInt(len(aIDs), len(bIDs))
}

func compareIdentifier(a, b string) int {
	aIsNum := isNumericIdentifier(a)
	bIsNum := isNumericIdentifier(b)

	switch {
	case aIsNum && bIsNum:
		return compareNumeric(a, b)
	case aIsNum && !bIsNum:
		return -1 // numeric < non-numeric
	case !aIsNum && bIsNum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// SemVer numeric identifiers: only digits, no leading zeros unless exactly "0".
func isNumericIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if len(s) > 1 && s[0] == '0' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
