package common

import "fmt"

// Version variables injected at build time via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// FullVersion returns a formatted version string with build info.
func FullVersion() string {
	return fmt.Sprintf("%s (commit: %s)", Version, GitCommit)
}
