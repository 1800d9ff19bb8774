package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// DebugEnv names the environment variable that switches on debug output.
const DebugEnv = "TM_DEBUG"

var debugOut io.Writer = os.Stderr

// DebugEnabled reports whether TM_DEBUG is set to anything other than "" or "0".
func DebugEnabled() bool {
	v := os.Getenv(DebugEnv)
	return v != "" && v != "0"
}

// Debugf writes a line to stderr when debug output is on. It serves code
// that runs before a logger has been built, such as migrations and wiring.
func Debugf(format string, args ...interface{}) {
	if !DebugEnabled() {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(debugOut, "debug: "+msg)
}
