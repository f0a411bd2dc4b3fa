// Package version exposes the build version stamped in at link time.
package version

// Version is overridden via -ldflags at release builds.
var Version = "dev" //nolint:gochecknoglobals // set by the linker

// GetVersion returns the current build version.
func GetVersion() string {
	return Version
}
