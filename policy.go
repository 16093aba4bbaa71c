package execfence

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/execfence/execfence/internal/pathutil"
)

// defaultDeniedPrograms lists program basenames known to enable network
// egress. Entries are lowercase; matching is case-insensitive on the
// basename of the requested program.
var defaultDeniedPrograms = []string{
	// Network file-transfer clients.
	"curl", "wget", "ftp", "sftp", "lftp",
	// Remote-shell and copy tools.
	"ssh", "scp", "telnet", "nc", "netcat", "rsync",
	// Diagnostic and probing tools.
	"ping", "ping6", "traceroute", "traceroute6", "nmap", "ncat", "socat",
	// DNS lookup tools.
	"nslookup", "dig", "host",
	// Generic HTTP clients.
	"http", "httpie", "fetch",
}

// defaultNetworkPatterns lists literal substrings that indicate a network
// endpoint inside a command argument. Matching is case-sensitive and
// unanchored.
var defaultNetworkPatterns = []string{
	"http://",
	"https://",
	"ftp://",
	"ssh://",
	"tcp://",
	"udp://",
}

// Policy holds the two rule tables consulted by the gate: the set of denied
// program basenames and the set of network-endpoint patterns. A Policy is
// immutable after construction and safe for concurrent use.
type Policy struct {
	denied   map[string]bool
	patterns []string
}

// NewPolicy builds a Policy from explicit rule tables. Denied program names
// are lowercased; empty entries in either table are dropped.
func NewPolicy(deniedPrograms, networkPatterns []string) *Policy {
	p := &Policy{
		denied:   make(map[string]bool, len(deniedPrograms)),
		patterns: make([]string, 0, len(networkPatterns)),
	}
	for _, prog := range deniedPrograms {
		prog = strings.ToLower(strings.TrimSpace(prog))
		if prog != "" {
			p.denied[prog] = true
		}
	}
	for _, pat := range networkPatterns {
		if pat != "" && !containsString(p.patterns, pat) {
			p.patterns = append(p.patterns, pat)
		}
	}
	return p
}

// defaultPolicy caches the singleton DefaultPolicy instance.
var (
	defaultPolicyOnce sync.Once
	defaultPolicyInst *Policy
)

// DefaultPolicy returns the built-in policy tables. The policy is immutable,
// so it is created once and shared.
//
// Note that rsync is denied even though it can operate purely locally; the
// default tables are deliberately conservative.
func DefaultPolicy() *Policy {
	defaultPolicyOnce.Do(func() {
		defaultPolicyInst = NewPolicy(defaultDeniedPrograms, defaultNetworkPatterns)
	})
	return defaultPolicyInst
}

// Denies reports whether the program is on the denied list. The program is
// lowercased and reduced to its final path component before the membership
// test, so "/usr/bin/Curl", "./curl" and "curl" are all denied. If basename
// extraction yields nothing (degenerate input such as "/" or ""), the whole
// lowercased input is compared instead. Denies never fails; malformed input
// is simply not denied.
func (p *Policy) Denies(program string) bool {
	lower := strings.ToLower(program)
	base := pathutil.Base(lower)
	if base == "" {
		base = lower
	}
	return p.denied[base]
}

// MatchPattern returns the first network-endpoint pattern occurring as a
// substring of text, if any. The search is case-sensitive on purpose:
// normalizing the input could mask an actual match.
func (p *Policy) MatchPattern(text string) (string, bool) {
	for _, pat := range p.patterns {
		if strings.Contains(text, pat) {
			return pat, true
		}
	}
	return "", false
}

// DeniedPrograms returns a sorted copy of the denied program basenames.
func (p *Policy) DeniedPrograms() []string {
	out := make([]string, 0, len(p.denied))
	for prog := range p.denied {
		out = append(out, prog)
	}
	sort.Strings(out)
	return out
}

// NetworkPatterns returns a copy of the network-endpoint patterns.
func (p *Policy) NetworkPatterns() []string {
	return append([]string(nil), p.patterns...)
}

// Extend returns a new Policy with additional denied programs and patterns
// merged into p's tables. The receiver is not modified.
func (p *Policy) Extend(deniedPrograms, networkPatterns []string) *Policy {
	merged := NewPolicy(deniedPrograms, networkPatterns)
	for prog := range p.denied {
		merged.denied[prog] = true
	}
	for _, pat := range p.patterns {
		if !containsString(merged.patterns, pat) {
			merged.patterns = append(merged.patterns, pat)
		}
	}
	return merged
}

// policyFile is the on-disk layout accepted by LoadPolicyFile.
type policyFile struct {
	DeniedPrograms  []string `yaml:"denied_programs"`
	NetworkPatterns []string `yaml:"network_patterns"`
}

// LoadPolicyFile reads a YAML policy-extension file and returns the default
// policy extended with its entries. Extension files can only add rules; the
// built-in tables are never removed, so a deployment cannot accidentally
// open up egress through a config typo.
func LoadPolicyFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read policy file: %w", ErrConfigInvalid, err)
	}
	var pf policyFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("%w: cannot parse policy file %q: %w", ErrConfigInvalid, path, err)
	}
	for i, prog := range pf.DeniedPrograms {
		if strings.TrimSpace(prog) == "" {
			return nil, fmt.Errorf("%w: policy file %q: denied_programs[%d] must not be empty", ErrConfigInvalid, path, i)
		}
		if pathutil.ContainsNullByte(prog) {
			return nil, fmt.Errorf("%w: policy file %q: denied_programs[%d] must not contain null bytes", ErrConfigInvalid, path, i)
		}
	}
	for i, pat := range pf.NetworkPatterns {
		if pat == "" {
			return nil, fmt.Errorf("%w: policy file %q: network_patterns[%d] must not be empty", ErrConfigInvalid, path, i)
		}
		if pathutil.ContainsNullByte(pat) {
			return nil, fmt.Errorf("%w: policy file %q: network_patterns[%d] must not contain null bytes", ErrConfigInvalid, path, i)
		}
	}
	return DefaultPolicy().Extend(pf.DeniedPrograms, pf.NetworkPatterns), nil
}

// containsString reports whether s is present in list.
func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
