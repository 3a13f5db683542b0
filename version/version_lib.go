// Package version holds build-time information about the server binary.
package version

// Default build-time variables. These are overridden on build with
// -ldflags "-X github.com/socialsox/server/version.Version=..."
var (
	GitCommit = "library-import"
	Version   = "library-import"
	BuildTime = "library-import"
)
