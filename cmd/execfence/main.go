// Command execfence runs and classifies subprocess launches through the
// execfence policy gate.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/execfence/execfence"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exitErr *exitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		os.Exit(1)
	}
}

// exitCodeError propagates a child process exit code through cobra's
// error return without printing it as an error message.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "execfence",
		Short:         "Subprocess policy gate for no-egress environments",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// buildConfig assembles a fence config from the shared flags.
func buildConfig(policyPath string, strict bool) (*execfence.Config, error) {
	cfg := execfence.DefaultConfig()
	if strict {
		cfg.StrictPatterns = true
	}
	if policyPath != "" {
		policy, err := execfence.LoadPolicyFile(policyPath)
		if err != nil {
			return nil, err
		}
		cfg.Policy = policy
	}
	cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	return cfg, nil
}

func newRunCmd() *cobra.Command {
	var (
		policyPath string
		strict     bool
		dir        string
		env        []string
	)

	cmd := &cobra.Command{
		Use:   "run [flags] -- program [args...]",
		Short: "Run a program through the policy gate",
		Long: "Run classifies the program against the denied-program list, warns on\n" +
			"network-endpoint patterns in arguments, and executes the program with\n" +
			"its output passed through. The child's exit code becomes execfence's\n" +
			"exit code.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(policyPath, strict)
			if err != nil {
				return err
			}
			fence, err := execfence.NewFence(cfg)
			if err != nil {
				return err
			}

			opts := []execfence.Option{}
			if dir != "" {
				opts = append(opts, execfence.WithDir(dir))
			}
			if len(env) > 0 {
				opts = append(opts, execfence.WithEnv(env...))
			}

			gated, err := fence.CommandContext(cmd.Context(), args[0], opts...)
			if err != nil {
				return err
			}
			gated.Args(args[1:]...).
				Stdin(os.Stdin).
				Stdout(os.Stdout).
				Stderr(os.Stderr)

			if err := gated.Run(); err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					return &exitCodeError{code: exitErr.ExitCode()}
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&policyPath, "policy", "", "YAML file extending the default policy tables")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat network patterns in arguments as errors")
	cmd.Flags().StringVar(&dir, "dir", "", "working directory for the child process")
	cmd.Flags().StringArrayVar(&env, "env", nil, "extra KEY=VALUE environment entries (repeatable)")
	return cmd
}

func newCheckCmd() *cobra.Command {
	var policyPath string

	cmd := &cobra.Command{
		Use:   "check program [program...]",
		Short: "Classify programs without executing them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(policyPath, false)
			if err != nil {
				return err
			}
			fence, err := execfence.NewFence(cfg)
			if err != nil {
				return err
			}

			styles := newVerdictStyles(os.Stdout)
			blocked := false
			for _, program := range args {
				if err := fence.Check(program); err != nil {
					blocked = true
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", styles.blocked, program)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", styles.allowed, program)
				}
			}
			if blocked {
				return &exitCodeError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&policyPath, "policy", "", "YAML file extending the default policy tables")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the execfence version",
		Run: func(cmd *cobra.Command, args []string) {
			execfence.Banner(cmd.OutOrStdout())
		},
	}
}
