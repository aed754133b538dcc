// Package errors terminates CLI commands that cannot continue. The failure
// is recorded in the session log and echoed to stderr with an "Error: "
// prefix before the process exits.
package errors

import (
	"fmt"
	"os"

	"github.com/timetabled/timetabled/internal/logger"
)

// Fatal logs err, reports it on stderr and exits with status 1. Nil is a
// no-op so callers can pass an error return straight through.
func Fatal(err error) {
	if err == nil {
		return
	}
	fail(err.Error())
}

// Fatalf is Fatal with printf-style formatting.
func Fatalf(format string, args ...interface{}) {
	fail(fmt.Sprintf(format, args...))
}

func fail(msg string) {
	logger.Error("Command failed", "error", msg)
	fmt.Fprintln(os.Stderr, "Error: "+msg)
	os.Exit(1)
}
