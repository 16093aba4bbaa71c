package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/execfence/execfence"
)

func TestCheckCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"check", "echo", "ls"})

	if err := root.Execute(); err != nil {
		t.Fatalf("check: %v\noutput: %s", err, out.String())
	}
	if got := strings.Count(out.String(), "allowed"); got != 2 {
		t.Errorf("output %q must report 2 allowed programs", out.String())
	}
}

func TestCheckCommandBlocked(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"check", "curl"})

	err := root.Execute()
	var exitErr *exitCodeError
	if !errors.As(err, &exitErr) || exitErr.code != 1 {
		t.Fatalf("check curl: error = %v, want exit code 1", err)
	}
	if !strings.Contains(out.String(), "BLOCKED") {
		t.Errorf("output %q must mark curl as blocked", out.String())
	}
}

func TestRunCommand(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"run", "--", "true"})
	if err := root.Execute(); err != nil {
		t.Fatalf("run true: %v", err)
	}
}

func TestRunCommandBlocked(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"run", "--", "wget", "http://example.com"})

	err := root.Execute()
	if !errors.Is(err, execfence.ErrNetworkCommandBlocked) {
		t.Fatalf("run wget: error = %v, want ErrNetworkCommandBlocked", err)
	}
}

func TestBuildConfig(t *testing.T) {
	cfg, err := buildConfig("", true)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.StrictPatterns {
		t.Error("--strict must enable StrictPatterns")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	if err := os.WriteFile(path, []byte("denied_programs: [deno]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = buildConfig(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Policy.Denies("deno") {
		t.Error("--policy file entries must be applied")
	}

	if _, err := buildConfig(filepath.Join(dir, "missing.yaml"), false); !errors.Is(err, execfence.ErrConfigInvalid) {
		t.Errorf("missing policy file: error = %v, want ErrConfigInvalid", err)
	}
}
