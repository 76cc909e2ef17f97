package ui

import (
	"os"
	"strings"
	"sync/atomic"

	"github.com/mattn/go-isatty"
)

var verboseMode atomic.Bool

// VerboseEnvVar enables debug output when set to "1", "true" or "yes"
const VerboseEnvVar = "JVMREPO_VERBOSE"

// SetVerbose enables or disables debug output
func SetVerbose(enabled bool) {
	verboseMode.Store(enabled)
}

// IsVerbose reports whether debug output is enabled
func IsVerbose() bool {
	return verboseMode.Load()
}

// CheckVerboseEnv enables verbose mode if JVMREPO_VERBOSE is set
func CheckVerboseEnv() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(VerboseEnvVar))) {
	case "1", "true", "yes":
		SetVerbose(true)
	}
}

// Debug prints a dimmed diagnostic line to stderr when verbose mode is on.
// Safe to call from any goroutine.
func Debug(format string, args ...interface{}) {
	if !IsVerbose() {
		return
	}
	levelDebug.print(stderr, format, args...)
}

// IsInteractive reports whether stdout is a terminal.
// Spinners and progress bars are suppressed otherwise.
func IsInteractive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
