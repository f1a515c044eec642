package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestLine(t *testing.T) {
	prevNoColor := color.NoColor
	color.NoColor = true
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() {
		color.NoColor = prevNoColor
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})

	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"0.1.0-dev", "", "", "copper 0.1.0-dev"},
		{"1.2.3", "abc123", "", "copper 1.2.3 (abc123)"},
		{"1.2.3-rc.1+build.5", "abc123", "2024-01-15", "copper 1.2.3-rc.1+build.5 (abc123) built 2024-01-15"},
		{"nightly", "", "", "copper nightly"},
	}
	for _, tt := range tests {
		Version, GitCommit, BuildDate = tt.version, tt.commit, tt.date
		if got := Line(); got != tt.want {
			t.Errorf("Line() with %q = %q, want %q", tt.version, got, tt.want)
		}
	}
}
