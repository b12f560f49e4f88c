// Package version exposes build metadata for drupkit binaries.
//
// The variables are overridden at release time via -ldflags:
//
//	go build -ldflags "-X github.com/drupkit/drupkit/pkg/version.Version=v1.2.3"
package version

import "fmt"

// Defaults apply to local and test builds.
var (
	Version = "v0.1.0"
	Commit  = "none"
	Date    = "unknown"
)

// GetVersion returns the bare version string.
func GetVersion() string {
	return Version
}

// GetFullVersion returns the version with commit and build date.
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
