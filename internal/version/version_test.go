package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestColored(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()

	color.NoColor = false
	Version = "0.4.2-dev"
	got := Colored()
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-dev") {
		t.Fatalf("Colored = %q", got)
	}

	Version = "nightly"
	if got := Colored(); got != "nightly" {
		t.Fatalf("non-semver must pass through, got %q", got)
	}
}
