package cli

import (
	"fmt"
	"io"
)

// fprintln writes a line, ignoring write errors. Output streams are the
// caller's problem; a broken pipe should not change the exit code.
func fprintln(w io.Writer, args ...any) {
	_, _ = fmt.Fprintln(w, args...)
}

// fprint writes a string, ignoring write errors.
func fprint(w io.Writer, s string) {
	_, _ = fmt.Fprint(w, s)
}

// fprintf writes formatted output, ignoring write errors.
func fprintf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
