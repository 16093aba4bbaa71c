package execfence

// IsDenied reports whether the program's case-insensitive basename is on the
// default denied-program list. It is a pure function over DefaultPolicy:
// same input, same output, no state.
func IsDenied(program string) bool {
	return DefaultPolicy().Denies(program)
}

// ContainsNetworkPattern reports whether text contains any of the default
// network-endpoint patterns as a case-sensitive substring.
func ContainsNetworkPattern(text string) bool {
	_, ok := DefaultPolicy().MatchPattern(text)
	return ok
}
