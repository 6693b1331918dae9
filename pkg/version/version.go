// Package version provides build metadata and version information.
package version

import (
	"fmt"
	"runtime"
)

// Name is the human-readable server name advertised to MCP clients.
const Name = "Rejseplanen MCP Server"

var (
	// BuildVersion is the semantic version of the build
	BuildVersion = "1.0.0"

	// BuildCommit is the git commit hash of the build
	BuildCommit = "unknown"

	// BuildDate is the date and time of the build
	BuildDate = "unknown"

	// GoVersion is the version of Go used to build
	GoVersion = runtime.Version()
)

// String returns a formatted version string
func String() string {
	return fmt.Sprintf("rejseplanen-mcp version %s (%s) built on %s with %s",
		BuildVersion, BuildCommit, BuildDate, GoVersion)
}

// UserAgent returns the User-Agent sent to the Rejseplanen API.
func UserAgent() string {
	return "rejseplanen-mcp/" + BuildVersion
}

// Info returns a fresh map of version information, served by the health
// endpoint.
func Info() map[string]string {
	return map[string]string{
		"name":       Name,
		"version":    BuildVersion,
		"commit":     BuildCommit,
		"build_date": BuildDate,
		"go_version": GoVersion,
	}
}
