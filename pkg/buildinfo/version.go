// Package buildinfo holds the version stamped into the boxscope binary.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/boxscope/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/boxscope/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)" \
//	    ./cmd/boxscope
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the source revision.
	Commit = ""

	// Date is the build time.
	Date = ""
)

// revision fills Commit and Date from the VCS stamp Go embeds in module
// builds when ldflags did not set them.
func revision() (commit, date string) {
	commit, date = Commit, Date
	if commit != "" && date != "" {
		return commit, date
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "" && len(s.Value) >= 7 {
					commit = s.Value[:7]
				}
			case "vcs.time":
				if date == "" {
					date = s.Value
				}
			}
		}
	}
	if commit == "" {
		commit = "none"
	}
	if date == "" {
		date = "unknown"
	}
	return commit, date
}

// String returns the version with its commit and build date on one line.
func String() string {
	commit, date := revision()
	return fmt.Sprintf("%s (%s, %s)", Version, commit, date)
}

// Template returns the version template for cobra.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}
