package execfence

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/google/uuid"

	"github.com/execfence/execfence/internal/envutil"
)

// Command is a single-use, gated subprocess builder wrapping os/exec. It is
// created by a Fence only after the program has passed the denied-program
// check, configured through fluent calls, and consumed by exactly one
// terminal operation (Start, Run, Output or Capture).
//
// Argument inspection on Arg/Args is observability, not enforcement: a
// matching argument triggers at most one advisory warning per Command (or,
// in strict mode, a deferred error), and the argument is always forwarded
// to the process unmodified.
//
// A Command is single-owner and not safe for concurrent use.
type Command struct {
	cmd     *exec.Cmd
	program string
	id      string
	policy  *Policy
	strict  bool
	logger  *slog.Logger

	maxOutputBytes int

	// warned is monotonic: once a pattern warning has been emitted for this
	// Command, no further warnings are logged.
	warned bool

	// patternErr records the first strict-mode pattern hit; terminal
	// operations return it instead of spawning.
	patternErr *PatternDetectedError

	// consumed marks that a terminal operation has been issued.
	consumed bool
}

// newCommand runs the denied-program check and, on the accept path only,
// builds an open Command. ctx may be nil for commands without cancellation.
func (f *Fence) newCommand(ctx context.Context, program string, opts ...Option) (*Command, error) {
	co := mergeOptions(opts...)

	policy := f.policy
	if co.policy != nil {
		policy = co.policy
	}
	if policy.Denies(program) {
		return nil, &BlockedCommandError{Program: program}
	}

	var cmd *exec.Cmd
	if ctx != nil {
		cmd = exec.CommandContext(ctx, program)
		setupProcessGroup(cmd)
	} else {
		cmd = exec.Command(program)
	}

	logger := f.logger
	if co.logger != nil {
		logger = co.logger
	}
	strict := f.strict
	if co.strict != nil {
		strict = *co.strict
	}

	c := &Command{
		cmd:            cmd,
		program:        program,
		id:             uuid.NewString(),
		policy:         policy,
		strict:         strict,
		logger:         logger,
		maxOutputBytes: f.maxOutputBytes,
	}

	for _, kv := range co.env {
		if cmd.Env == nil {
			cmd.Env = os.Environ()
		}
		cmd.Env = append(cmd.Env, kv)
	}
	if co.dir != "" {
		cmd.Dir = co.dir
	}
	return c, nil
}

// Arg appends a single argument. If the argument contains a network-endpoint
// pattern, an advisory warning naming the program and the argument is logged
// once per Command; the argument itself is forwarded regardless.
func (c *Command) Arg(arg string) *Command {
	if pattern, ok := c.policy.MatchPattern(arg); ok {
		if !c.warned {
			c.logger.Warn("network pattern detected in command argument; possible network access attempt",
				"command_id", c.id,
				"program", c.program,
				"arg", arg,
				"pattern", pattern,
			)
			c.warned = true
		}
		if c.strict && c.patternErr == nil {
			c.patternErr = &PatternDetectedError{Text: arg, Pattern: pattern}
		}
	}
	c.cmd.Args = append(c.cmd.Args, arg)
	return c
}

// Args appends multiple arguments in order, applying the same per-argument
// pattern check as Arg.
func (c *Command) Args(args ...string) *Command {
	for _, arg := range args {
		c.Arg(arg)
	}
	return c
}

// Env sets an environment variable for the process, replacing any existing
// value. The inherited environment is materialized on first use.
func (c *Command) Env(key, value string) *Command {
	if c.cmd.Env == nil {
		c.cmd.Env = os.Environ()
	}
	c.cmd.Env = envutil.Set(c.cmd.Env, key, value)
	return c
}

// EnvRemove removes an environment variable from the process environment.
func (c *Command) EnvRemove(key string) *Command {
	if c.cmd.Env == nil {
		c.cmd.Env = os.Environ()
	}
	c.cmd.Env = envutil.Remove(c.cmd.Env, key)
	return c
}

// EnvClear empties the process environment so nothing is inherited.
func (c *Command) EnvClear() *Command {
	c.cmd.Env = []string{}
	return c
}

// Dir sets the working directory of the process.
func (c *Command) Dir(dir string) *Command {
	c.cmd.Dir = dir
	return c
}

// Stdin sets the process's standard input.
func (c *Command) Stdin(r io.Reader) *Command {
	c.cmd.Stdin = r
	return c
}

// Stdout sets the process's standard output.
func (c *Command) Stdout(w io.Writer) *Command {
	c.cmd.Stdout = w
	return c
}

// Stderr sets the process's standard error.
func (c *Command) Stderr(w io.Writer) *Command {
	c.cmd.Stderr = w
	return c
}

// Program returns the program this Command was constructed with.
func (c *Command) Program() string {
	return c.program
}

// ID returns the correlation id attached to this Command's log records.
func (c *Command) ID() string {
	return c.id
}

// preflight guards terminal operations: a Command can only be consumed once,
// and in strict mode a recorded pattern hit fails the launch before spawn.
func (c *Command) preflight() error {
	if c.consumed {
		return ErrCommandConsumed
	}
	if c.patternErr != nil {
		return c.patternErr
	}
	c.consumed = true
	return nil
}

// Start launches the process and returns without waiting for it. The error
// surface past the gate is os/exec's, unchanged. Use Process and Wait to
// manage the running child.
func (c *Command) Start() error {
	if err := c.preflight(); err != nil {
		return err
	}
	return c.cmd.Start()
}

// Wait waits for a process launched with Start to exit.
func (c *Command) Wait() error {
	return c.cmd.Wait()
}

// Process returns the underlying process handle once Start has succeeded,
// and nil before that.
func (c *Command) Process() *os.Process {
	return c.cmd.Process
}

// Run launches the process and waits for completion, reporting the exit
// status exactly as os/exec does (a non-zero exit is an *exec.ExitError).
func (c *Command) Run() error {
	if err := c.preflight(); err != nil {
		return err
	}
	return c.cmd.Run()
}

// Output launches the process, waits for completion and returns its standard
// output, delegating verbatim to os/exec.
func (c *Command) Output() ([]byte, error) {
	if err := c.preflight(); err != nil {
		return nil, err
	}
	return c.cmd.Output()
}

// Capture launches the process, waits for completion and returns an
// ExecResult with both output streams captured. Output is bounded by the
// configured MaxOutputBytes; non-zero exits are reported in the result, not
// as an error.
func (c *Command) Capture() (*ExecResult, error) {
	if err := c.preflight(); err != nil {
		return nil, err
	}
	return runCapture(c.cmd, c.maxOutputBytes)
}
