// Package buildinfo carries values stamped in at link time with
// -ldflags "-X github.com/modoterra/check-clamav/internal/buildinfo.Version=...".
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
