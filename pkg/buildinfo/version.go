// Package buildinfo holds version information injected at build time:
//
//	go build -ldflags "-X github.com/exzellenz/exzellenz/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/exzellenz/exzellenz/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/exzellenz/exzellenz/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"     // semantic version, e.g. "v1.2.3"
	Commit  = "none"    // git commit SHA
	Date    = "unknown" // build timestamp
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template for cobra's --version output.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent identifies the engine in outgoing requests, e.g. "exzellenz/v1.2.3".
func UserAgent() string {
	return "exzellenz/" + Version
}
