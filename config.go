package execfence

import (
	"fmt"
	"log/slog"
	"strings"
)

// defaultMaxOutputBytes is the default limit for output captured by
// Command.Capture (10 MB).
const defaultMaxOutputBytes = 10 * 1024 * 1024

// Config holds the complete configuration for a Fence.
type Config struct {
	// Policy provides the denied-program and network-pattern tables.
	// If nil, DefaultPolicy() is used.
	Policy *Policy

	// StrictPatterns escalates network-pattern detection in arguments from
	// an advisory warning to a hard error: the first matching argument is
	// recorded and terminal operations fail with a PatternDetectedError
	// instead of spawning. The default (false) preserves the advisory,
	// log-only behavior.
	StrictPatterns bool

	// MaxOutputBytes limits the size of stdout/stderr captured by
	// Command.Capture. 0 disables the limit. Defaults to 10 MB when created
	// via DefaultConfig().
	MaxOutputBytes int

	// Logger is the structured logger used for advisory warnings such as
	// network-pattern detections. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with the built-in policy tables and
// advisory-only pattern detection.
func DefaultConfig() *Config {
	return &Config{
		Policy:         DefaultPolicy(),
		MaxOutputBytes: defaultMaxOutputBytes,
	}
}

// StrictConfig returns a Config that treats network-pattern detections in
// arguments as hard errors rather than advisory warnings.
func StrictConfig() *Config {
	cfg := DefaultConfig()
	cfg.StrictPatterns = true
	return cfg
}

// Validate checks the configuration and returns a descriptive error if any
// field is invalid. The returned error wraps ErrConfigInvalid.
func (c *Config) Validate() error {
	var errs []string

	if c.MaxOutputBytes < 0 {
		errs = append(errs, "MaxOutputBytes: must be >= 0")
	}
	if c.Policy != nil {
		if len(c.Policy.denied) == 0 {
			errs = append(errs, "Policy: denied-program table must not be empty")
		}
		if len(c.Policy.patterns) == 0 {
			errs = append(errs, "Policy: network-pattern table must not be empty")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigInvalid, strings.Join(errs, "; "))
	}
	return nil
}

// copyConfig returns a copy of cfg with defaults filled in. Policy and
// Logger are shared by reference: both are immutable or safe for concurrent
// use by contract.
func copyConfig(cfg *Config) Config {
	cfgCopy := *cfg
	if cfgCopy.Policy == nil {
		cfgCopy.Policy = DefaultPolicy()
	}
	if cfgCopy.Logger == nil {
		cfgCopy.Logger = slog.Default()
	}
	return cfgCopy
}
