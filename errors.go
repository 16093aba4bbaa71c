package execfence

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the execfence package.
var (
	// ErrNetworkCommandBlocked indicates the requested program is on the
	// denied-program list.
	ErrNetworkCommandBlocked = errors.New("execfence: network command blocked")

	// ErrURLPatternDetected indicates a command argument contains a
	// network-endpoint pattern. Only returned in strict mode; the default
	// behavior is an advisory log warning.
	ErrURLPatternDetected = errors.New("execfence: url pattern detected")

	// ErrSecurityViolation is the general-purpose violation kind reserved
	// for extension policies. The default rule set never raises it.
	ErrSecurityViolation = errors.New("execfence: security violation")

	// ErrCommandConsumed indicates a terminal operation was invoked on a
	// Command that has already been started or run.
	ErrCommandConsumed = errors.New("execfence: command already consumed")

	// ErrConfigInvalid indicates the provided configuration failed validation.
	ErrConfigInvalid = errors.New("execfence: invalid configuration")
)

// BlockedCommandError is returned when a requested program's basename matches
// the denied-program list. It wraps ErrNetworkCommandBlocked so that
// errors.Is(err, ErrNetworkCommandBlocked) still works.
type BlockedCommandError struct {
	// Program is the program string as requested by the caller.
	Program string
}

func (e *BlockedCommandError) Error() string {
	return fmt.Sprintf("%s: %q is a denied network program", ErrNetworkCommandBlocked.Error(), e.Program)
}

func (e *BlockedCommandError) Unwrap() error {
	return ErrNetworkCommandBlocked
}

// PatternDetectedError describes a command argument that contains a
// network-endpoint pattern. It wraps ErrURLPatternDetected so that
// errors.Is(err, ErrURLPatternDetected) still works.
type PatternDetectedError struct {
	// Text is the offending argument.
	Text string
	// Pattern is the pattern that matched within Text.
	Pattern string
}

func (e *PatternDetectedError) Error() string {
	return fmt.Sprintf("%s: %q in %q", ErrURLPatternDetected.Error(), e.Pattern, e.Text)
}

func (e *PatternDetectedError) Unwrap() error {
	return ErrURLPatternDetected
}

// SecurityViolationError is the extension point for policies beyond the
// built-in rules (argument-count limits, disallowed flags, ...). It wraps
// ErrSecurityViolation.
type SecurityViolationError struct {
	// Message describes the violation.
	Message string
}

func (e *SecurityViolationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSecurityViolation.Error(), e.Message)
}

func (e *SecurityViolationError) Unwrap() error {
	return ErrSecurityViolation
}
