// Package build provides build information that is set at compile time
// via ldflags.
package build

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
