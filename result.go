package execfence

import "time"

// ExecResult holds the outcome of a Command.Capture execution.
type ExecResult struct {
	// ExitCode is the process exit code. 0 typically indicates success.
	ExitCode int

	// Stdout contains the captured standard output of the process.
	Stdout string

	// Stderr contains the captured standard error of the process.
	Stderr string

	// Duration is the wall-clock time the process took to execute.
	Duration time.Duration

	// Truncated indicates whether the output was cut off by MaxOutputBytes.
	Truncated bool
}
