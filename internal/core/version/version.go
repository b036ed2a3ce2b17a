// Package version reports build metadata stamped in with -ldflags.
package version

import "runtime"

// BuildInfo holds version information about the build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Info returns the build information for service. Set at build time with
// -ldflags "-X 'datax/internal/core/version.version=v0.1.0' -X 'datax/internal/core/version.commit=abcd'"
func Info(service string) BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
	}
}

// Short is "version (commit)"
func Short() string { return version + " (" + commit + ")" }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
