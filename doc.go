// Package execfence is a policy gate between application code and process
// creation. It blocks subprocess launches of known network-egress programs
// (curl, ssh, dig, ...) and warns when command arguments look like network
// endpoints, while leaving every other subprocess capability untouched.
//
// execfence is a voluntary interception point, not a sandbox: it checks the
// spawn request, never the spawned process. It is designed to pair with a
// build-time capability-curated API surface that removes direct in-process
// socket access, so that gated subprocess execution is the only remaining
// avenue to the network.
//
// Policy enforcement happens exactly once, at command construction: a denied
// program never yields a Command. Argument inspection is advisory by default
// (one warning per Command) and can be escalated to a hard error with
// Config.StrictPatterns.
//
// Basic usage:
//
//	cmd, err := execfence.New("echo")
//	if err != nil {
//	    log.Fatal(err) // e.g. execfence.ErrNetworkCommandBlocked
//	}
//	out, err := cmd.Args("hello").Output()
package execfence
