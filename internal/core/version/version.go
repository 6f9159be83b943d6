// Package version reports what build of the api is running
package version

import "runtime/debug"

// Service is the name the api reports in meta endpoints and logs
const Service = "orgstats-api"

// BuildInfo is the payload of /meta/version
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// set with -ldflags "-X orgstats/internal/core/version.version=v0.1.0 -X ...commit=abcd -X ...date=2026-10-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// readBuildInfo is swapped by tests
var readBuildInfo = debug.ReadBuildInfo

// Info returns the linked values, commit and date fall back to the VCS stamp go build embeds
func Info() BuildInfo {
	bi := BuildInfo{Service: Service, Version: version, Commit: commit, Date: date}
	if bi.Commit != "none" && bi.Date != "unknown" {
		return bi
	}
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return bi
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && bi.Commit == "none":
			bi.Commit = s.Value
		case s.Key == "vcs.time" && bi.Date == "unknown":
			bi.Date = s.Value
		}
	}
	return bi
}
