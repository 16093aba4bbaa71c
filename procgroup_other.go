//go:build !darwin && !linux

package execfence

import "os/exec"

// setupProcessGroup is a no-op on platforms without Unix process groups;
// context cancellation falls back to os/exec's default Kill of the direct
// child only.
func setupProcessGroup(_ *exec.Cmd) {}
