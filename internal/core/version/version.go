// Package version reports what build is running
package version

// Service is the api's name in logs, meta responses and clickhouse client info
const Service = "posdash-api"

// Stamped at link time:
//
//	go build -ldflags "-X posdash/internal/core/version.version=v1.4.0 -X posdash/internal/core/version.commit=$(git rev-parse --short HEAD)"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo is served by /meta/version
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func Info() BuildInfo {
	return BuildInfo{Service: Service, Version: version, Commit: commit, Date: date}
}
