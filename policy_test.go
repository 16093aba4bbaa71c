package execfence

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestDefaultPolicyTables(t *testing.T) {
	p := DefaultPolicy()

	denied := p.DeniedPrograms()
	if len(denied) != len(defaultDeniedPrograms) {
		t.Errorf("denied table size = %d, want %d", len(denied), len(defaultDeniedPrograms))
	}
	if !sort.StringsAreSorted(denied) {
		t.Error("DeniedPrograms() must be sorted")
	}
	for _, want := range []string{"curl", "wget", "ssh", "nc", "rsync", "dig", "httpie"} {
		if !p.Denies(want) {
			t.Errorf("default policy must deny %q", want)
		}
	}

	patterns := p.NetworkPatterns()
	if len(patterns) != len(defaultNetworkPatterns) {
		t.Errorf("pattern table size = %d, want %d", len(patterns), len(defaultNetworkPatterns))
	}
}

func TestDefaultPolicyIsCached(t *testing.T) {
	if DefaultPolicy() != DefaultPolicy() {
		t.Error("DefaultPolicy must return the same instance")
	}
}

func TestPolicyAccessorsReturnCopies(t *testing.T) {
	p := DefaultPolicy()

	denied := p.DeniedPrograms()
	denied[0] = "mutated"
	if p.DeniedPrograms()[0] == "mutated" {
		t.Error("mutating the returned denied slice must not affect the policy")
	}

	patterns := p.NetworkPatterns()
	patterns[0] = "mutated://"
	if p.NetworkPatterns()[0] == "mutated://" {
		t.Error("mutating the returned pattern slice must not affect the policy")
	}
}

func TestNewPolicyNormalizes(t *testing.T) {
	p := NewPolicy([]string{"Frobnicate", "  spaced  ", ""}, []string{"gopher://", "", "gopher://"})

	if !p.Denies("frobnicate") {
		t.Error("denied entries must be matched case-insensitively")
	}
	if !p.Denies("SPACED") {
		t.Error("denied entries must be trimmed")
	}
	if p.Denies("") {
		t.Error("empty entries must be dropped")
	}
	if got := len(p.NetworkPatterns()); got != 1 {
		t.Errorf("pattern count = %d, want 1 (empty and duplicate entries dropped)", got)
	}
}

func TestPolicyExtend(t *testing.T) {
	base := DefaultPolicy()
	extended := base.Extend([]string{"deno"}, []string{"gopher://"})

	if !extended.Denies("deno") {
		t.Error("extended policy must deny the added program")
	}
	if !extended.Denies("curl") {
		t.Error("extended policy must keep the base denied programs")
	}
	if _, ok := extended.MatchPattern("gopher://hole"); !ok {
		t.Error("extended policy must match the added pattern")
	}
	if _, ok := extended.MatchPattern("https://x"); !ok {
		t.Error("extended policy must keep the base patterns")
	}

	if base.Denies("deno") {
		t.Error("Extend must not mutate the receiver")
	}
}

func TestLoadPolicyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	data := "denied_programs:\n  - deno\n  - Bun\nnetwork_patterns:\n  - \"gopher://\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPolicyFile(path)
	if err != nil {
		t.Fatalf("LoadPolicyFile: %v", err)
	}
	for _, prog := range []string{"deno", "bun", "curl"} {
		if !p.Denies(prog) {
			t.Errorf("loaded policy must deny %q", prog)
		}
	}
	if _, ok := p.MatchPattern("gopher://hole"); !ok {
		t.Error("loaded policy must match the added pattern")
	}
}

func TestLoadPolicyFileErrors(t *testing.T) {
	dir := t.TempDir()

	write := func(name, data string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "does-not-exist.yaml")},
		{"malformed yaml", write("bad.yaml", "denied_programs: [unclosed\n")},
		{"empty program entry", write("empty-prog.yaml", "denied_programs:\n  - \"\"\n")},
		{"empty pattern entry", write("empty-pat.yaml", "network_patterns:\n  - \"\"\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPolicyFile(tt.path)
			if !errors.Is(err, ErrConfigInvalid) {
				t.Errorf("error = %v, want ErrConfigInvalid", err)
			}
		})
	}
}
