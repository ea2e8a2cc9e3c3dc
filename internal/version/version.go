package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time:
//
//	go build -ldflags="-X github.com/muurk/catalog-admin/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/catalog-admin/internal/version.Commit=abc1234"
var (
	Version = ""
	Commit  = ""
)

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func init() {
	if Version == "" || Commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			fillFromSettings(info.Main.Version, info.Settings)
		}
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fillFromSettings uses the module version (set by go install pkg@vX) and the
// VCS stamp when ldflags did not provide them
func fillFromSettings(moduleVersion string, settings []debug.BuildSetting) {
	if Version == "" && moduleVersion != "" && moduleVersion != "(devel)" {
		Version = moduleVersion
	}
	if Commit != "" {
		return
	}

	var revision string
	dirty := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if dirty {
		revision += "-dirty"
	}
	Commit = revision
}

// Get returns the version information of this build
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Full returns the version with its commit, e.g. "v0.3.0 (commit: abc1234)"
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
