// Package buildinfo holds release metadata stamped in with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/cleared-dev/smsledger/internal/buildinfo.Version=v0.3.0"
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
