// Package version reports which clustercolour build is running.
//
// Release builds set Version, Commit and Date with -ldflags "-X ...". Plain
// `go install` builds leave them unset and fall back to the VCS stamp Go
// embeds in the binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const unknown = "unknown"

// Set at build time with -ldflags
// "-X github.com/jmylchreest/clustercolour/internal/version.Version=x.y.z".
var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

// Short returns the version alone, as used by --version.
func Short() string {
	return Version
}

// String returns the version line printed by the version command.
func String() string {
	commit, date := Commit, Date
	if commit == unknown {
		commit, date = vcsStamp(date)
	}
	platform := runtime.GOOS + "/" + runtime.GOARCH
	return format(Version, commit, date, runtime.Version(), platform)
}

func format(v, commit, date, goVersion, platform string) string {
	var details []string
	if commit != unknown {
		details = append(details, "commit: "+shortCommit(commit))
	}
	if date != unknown {
		details = append(details, "built: "+date)
	}
	details = append(details, goVersion, platform)
	return fmt.Sprintf("clustercolour version %s (%s)", v, strings.Join(details, ", "))
}

// vcsStamp reads the revision and commit time recorded by the go command.
func vcsStamp(date string) (string, string) {
	commit := unknown
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return commit, date
	}
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
		case "vcs.time":
			if date == unknown {
				date = s.Value
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty && commit != unknown {
		commit += "-dirty"
	}
	return commit, date
}

func shortCommit(c string) string {
	c, dirty := strings.CutSuffix(c, "-dirty")
	if len(c) > 8 {
		c = c[:8]
	}
	if dirty {
		c += "-dirty"
	}
	return c
}
