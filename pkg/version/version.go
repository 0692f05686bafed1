// Package version reports the gridscope build version.
package version

import "runtime/debug"

// version is overridden at build time via
// -ldflags "-X github.com/gridscope/gridscope/pkg/version.version=v1.2.3".
var version = "dev"

// GetVersion returns the build version: the ldflags value when set,
// otherwise the module version recorded in the build info.
func GetVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return version
}
