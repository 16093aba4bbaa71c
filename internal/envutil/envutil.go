// Package envutil manipulates "KEY=VALUE" environment slices as used by
// os/exec.
package envutil

import "strings"

// Set sets or replaces an environment variable in an env slice. If the key
// already exists its value is updated in place, otherwise the entry is
// appended. Returns the modified slice.
func Set(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

// Get returns the value of key from an env slice and whether it was found.
func Get(env []string, key string) (string, bool) {
	prefix := key + "="
	for _, e := range env {
		if strings.HasPrefix(e, prefix) {
			return e[len(prefix):], true
		}
	}
	return "", false
}

// Remove returns a new slice with every entry for key removed.
func Remove(env []string, key string) []string {
	prefix := key + "="
	result := make([]string, 0, len(env))
	for _, e := range env {
		if !strings.HasPrefix(e, prefix) {
			result = append(result, e)
		}
	}
	return result
}
