// Package buildinfo carries version metadata stamped at build time.
//
// Release builds override the defaults with ldflags:
//
//	go build -ldflags "-X sccmap/pkg/buildinfo.Version=v1.0.0 \
//	    -X sccmap/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X sccmap/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Defaults identify a from-source build that was not stamped.
var (
	Version = "dev"     // semantic version, e.g. "v1.2.3"
	Commit  = "none"    // git commit SHA
	Date    = "unknown" // build timestamp, RFC 3339
)

// Template returns the cobra version template including commit and date.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
