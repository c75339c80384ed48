// Package errors renders user-facing failures for the CLI surface.
// Messages meant for the terminal go through Format so every command
// fails with the same shape, while the structured log keeps the raw
// error.
package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/dayring/internal/logger"
)

// Format renders err for the terminal. Nil yields the empty string so
// callers can print unconditionally.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf is Format for callers that build the message from a format
// string rather than an error value.
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal prints err to stderr and exits with code 1. A nil err is a
// no-op, which lets commands end with Fatal(run()).
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintf(os.Stderr, "%s\n", Format(err))
	os.Exit(1)
}

// Fatalf is Fatal with a format string. Unlike Fatal it always exits.
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("command failed", "error", msg)
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	os.Exit(1)
}
