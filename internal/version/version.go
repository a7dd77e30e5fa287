// Package version carries the build identity stamped into release binaries.
package version

// Build-time variables set by ldflags, e.g.
// -ldflags "-X github.com/MeKo-Tech/lingua/internal/version.Version=v1.2.3"
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns the version, commit and build date in one call.
func Info() (version, commit, date string) {
	return Version, GitCommit, BuildDate
}
