package version

import (
	"runtime/debug"
	"testing"
)

func TestFillFromSettings(t *testing.T) {
	tests := []struct {
		name          string
		moduleVersion string
		settings      []debug.BuildSetting
		wantVersion   string
		wantCommit    string
	}{
		{
			name:          "tagged install",
			moduleVersion: "v1.4.0",
			wantVersion:   "v1.4.0",
		},
		{
			name:          "local build",
			moduleVersion: "(devel)",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.modified", Value: "false"},
			},
			wantCommit: "0123456",
		},
		{
			name: "dirty tree",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "feedbeef00"},
				{Key: "vcs.modified", Value: "true"},
			},
			wantCommit: "feedbee-dirty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldVersion, oldCommit := Version, Commit
			defer func() { Version, Commit = oldVersion, oldCommit }()
			Version, Commit = "", ""

			fillFromSettings(tt.moduleVersion, tt.settings)

			if Version != tt.wantVersion {
				t.Errorf("Version = %q, want %q", Version, tt.wantVersion)
			}
			if Commit != tt.wantCommit {
				t.Errorf("Commit = %q, want %q", Commit, tt.wantCommit)
			}
		})
	}
}

func TestFillFromSettingsKeepsLdflags(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	defer func() { Version, Commit = oldVersion, oldCommit }()
	Version, Commit = "v9.9.9", "cafe123"

	fillFromSettings("v1.0.0", []debug.BuildSetting{{Key: "vcs.revision", Value: "0000000000"}})

	if Version != "v9.9.9" || Commit != "cafe123" {
		t.Errorf("got %s/%s, want ldflags values kept", Version, Commit)
	}
}

func TestGet(t *testing.T) {
	info := Get()
	if info.Version == "" || info.Commit == "" || info.GoVersion == "" || info.Platform == "" {
		t.Errorf("Get() has empty fields: %+v", info)
	}
}
