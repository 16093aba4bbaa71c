package execfence

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestEnabled(t *testing.T) {
	t.Setenv(activationEnvVar, "1")
	if !Enabled() {
		t.Error("Enabled() = false with the variable set")
	}

	// Set-to-empty still counts as enabled; only an unset variable disables.
	t.Setenv(activationEnvVar, "")
	if !Enabled() {
		t.Error("Enabled() = false with the variable set to empty")
	}

	os.Unsetenv(activationEnvVar) // t.Setenv restores the original value afterwards
	if Enabled() {
		t.Error("Enabled() = true with the variable unset")
	}
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	Banner(&buf)

	out := buf.String()
	if !strings.Contains(out, Version) {
		t.Errorf("banner %q must contain the version", out)
	}
	if !strings.Contains(out, "blocked") {
		t.Errorf("banner %q must describe the restriction", out)
	}
}
