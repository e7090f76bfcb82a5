// Package version reports the kacl release. The value is set at build time
// with -ldflags "-X github.com/indaco/kacl/internal/version.version=1.2.3"
// and falls back to the module version recorded in the binary.
package version

import (
	"runtime/debug"
	"strings"
)

var version = ""

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the version without a leading "v", or "dev" when
// nothing is known.
func GetVersion() string {
	if version != "" {
		return strings.TrimPrefix(version, "v")
	}
	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return strings.TrimPrefix(v, "v")
		}
	}
	return "dev"
}
