package execfence

import (
	"fmt"
	"io"
	"os"
)

// Version is the execfence release version.
const Version = "0.4.1"

// activationEnvVar marks processes running under an execfence-gated
// environment. Host applications set it before handing control to untrusted
// code; libraries can call Enabled to adapt their behavior.
const activationEnvVar = "EXECFENCE"

// Enabled reports whether the current process declares an execfence-gated
// environment via the EXECFENCE environment variable.
func Enabled() bool {
	_, ok := os.LookupEnv(activationEnvVar)
	return ok
}

// Banner writes a short startup notice describing the active restrictions.
// Host applications typically call this once on stderr.
func Banner(w io.Writer) {
	fmt.Fprintf(w, "execfence v%s - subprocess policy gate\n", Version)
	fmt.Fprintln(w, "  network programs: blocked")
	fmt.Fprintln(w, "  network patterns in arguments: warned")
}
