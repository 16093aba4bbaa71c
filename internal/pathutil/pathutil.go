// Package pathutil provides small path helpers for policy matching.
package pathutil

import "strings"

// Base extracts the final path component of a program reference. Trailing
// slashes are stripped before extraction, so "/usr/local/bin/" yields "bin".
// Degenerate inputs ("", "/", "//") yield "".
func Base(p string) string {
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	if idx := strings.LastIndex(p, "/"); idx >= 0 {
		return p[idx+1:]
	}
	return p
}

// ContainsNullByte reports whether s contains a NUL byte. Program names and
// policy entries with embedded NULs are rejected during validation because
// they can smuggle a different string past a C-string boundary.
func ContainsNullByte(s string) bool {
	return strings.IndexByte(s, 0) >= 0
}
