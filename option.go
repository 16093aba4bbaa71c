package execfence

import "log/slog"

// Option configures a single Command construction.
type Option func(*commandOptions)

// commandOptions holds per-command configuration applied via Option functions.
type commandOptions struct {
	policy *Policy
	logger *slog.Logger
	strict *bool
	env    []string
	dir    string
}

// mergeOptions applies Option functions and returns the result.
func mergeOptions(opts ...Option) *commandOptions {
	co := &commandOptions{}
	for _, opt := range opts {
		opt(co)
	}
	return co
}

// WithPolicy overrides the policy tables for a single Command.
func WithPolicy(p *Policy) Option {
	return func(o *commandOptions) {
		o.policy = p
	}
}

// WithLogger overrides the warning logger for a single Command.
func WithLogger(l *slog.Logger) Option {
	return func(o *commandOptions) {
		o.logger = l
	}
}

// WithStrictPatterns overrides the strict-pattern profile for a single
// Command. See Config.StrictPatterns.
func WithStrictPatterns(strict bool) Option {
	return func(o *commandOptions) {
		o.strict = &strict
	}
}

// WithEnv sets environment variables on the Command at construction.
// Each entry must be in "KEY=VALUE" format.
func WithEnv(env ...string) Option {
	cpy := append([]string(nil), env...)
	return func(o *commandOptions) {
		o.env = append(o.env, cpy...)
	}
}

// WithDir sets the working directory of the Command at construction.
func WithDir(dir string) Option {
	return func(o *commandOptions) {
		o.dir = dir
	}
}
