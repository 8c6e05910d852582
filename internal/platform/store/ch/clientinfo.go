package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"

	"posdash/internal/core/version"
)

// BuildClientInfo names this process in system.query_log
// tag falls back to the build version, the commit to the vcs stamp.
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	info := version.Info()
	if tag = strings.TrimSpace(tag); tag == "" {
		tag = info.Version
	}
	commit := info.Commit
	if commit == "" || commit == "none" {
		commit = vcsRevision()
	}
	host, _ := os.Hostname()

	return clickhouse.ClientInfo{Products: []struct{ Name, Version string }{
		{Name: "posdash", Version: tag},
		{Name: "role", Version: strings.TrimSpace(role)},
		{Name: "go", Version: runtime.Version()},
		{Name: "commit", Version: commit},
		{Name: "host", Version: host},
	}}
}

func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "unknown"
}
