package runner

import (
	"fmt"
	"strings"
)

// SubprocessError reports an engine script that could not be started or
// that exited with a non-zero status.
type SubprocessError struct {
	Code   int      // exit code; -1 when the process never ran or was killed by a signal
	Args   []string // argv of the child
	Stderr string   // tail of the child's stderr
	Err    error    // underlying error
}

// Error implements the error interface for SubprocessError.
func (e *SubprocessError) Error() string {
	var msg string
	if e.Code < 0 {
		msg = fmt.Sprintf("subprocess failed: %s: %v", strings.Join(e.Args, " "), e.Err)
	} else {
		msg = fmt.Sprintf("subprocess failed: %s exited with code %d", strings.Join(e.Args, " "), e.Code)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += "\n" + s
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *SubprocessError) Unwrap() error {
	return e.Err
}
