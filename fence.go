package execfence

import (
	"context"
	"log/slog"
	"sync"
)

// Fence gates subprocess creation against a policy. It is the factory for
// Command values: construction consults the denied-program table, so a
// Command for a denied program never exists.
//
// A Fence is immutable after creation and safe for concurrent use; the
// Commands it produces are single-owner and single-use.
type Fence struct {
	policy         *Policy
	strict         bool
	maxOutputBytes int
	logger         *slog.Logger
}

// NewFence creates a Fence from the given configuration. The configuration
// is validated and copied; later changes to cfg do not affect the Fence.
func NewFence(cfg *Config) (*Fence, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfgCopy := copyConfig(cfg)
	return &Fence{
		policy:         cfgCopy.Policy,
		strict:         cfgCopy.StrictPatterns,
		maxOutputBytes: cfgCopy.MaxOutputBytes,
		logger:         cfgCopy.Logger,
	}, nil
}

// Command constructs a gated Command for the given program. It fails with a
// BlockedCommandError, and constructs nothing, when the program's basename
// is on the denied list.
func (f *Fence) Command(program string, opts ...Option) (*Command, error) {
	return f.newCommand(nil, program, opts...)
}

// CommandContext is like Command but the spawned process is killed (via its
// process group) when ctx is cancelled.
func (f *Fence) CommandContext(ctx context.Context, program string, opts ...Option) (*Command, error) {
	return f.newCommand(ctx, program, opts...)
}

// Check classifies a program without constructing a Command. It returns a
// BlockedCommandError for denied programs and nil otherwise. Useful for
// dry-run and pre-flight validation.
func (f *Fence) Check(program string) error {
	if f.policy.Denies(program) {
		return &BlockedCommandError{Program: program}
	}
	return nil
}

// Policy returns the policy tables this Fence enforces.
func (f *Fence) Policy() *Policy {
	return f.policy
}

// defaultFence caches the Fence used by the package-level convenience
// functions. DefaultConfig always validates, so construction cannot fail.
var (
	defaultFenceOnce sync.Once
	defaultFenceInst *Fence
)

func defaultFence() *Fence {
	defaultFenceOnce.Do(func() {
		f, err := NewFence(DefaultConfig())
		if err != nil {
			panic("execfence: default config is invalid: " + err.Error())
		}
		defaultFenceInst = f
	})
	return defaultFenceInst
}

// New constructs a gated Command using the default policy tables.
func New(program string, opts ...Option) (*Command, error) {
	return defaultFence().Command(program, opts...)
}

// NewContext is like New but ties the spawned process to ctx.
func NewContext(ctx context.Context, program string, opts ...Option) (*Command, error) {
	return defaultFence().CommandContext(ctx, program, opts...)
}

// Check classifies a program against the default policy without constructing
// a Command.
func Check(program string) error {
	return defaultFence().Check(program)
}
