// Package ui provides colored console output and debug logging for the jvmrepo CLI
package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Messages go to stdout and diagnostics to stderr.
// Both follow color.NoColor, which fatih/color sets when the stream is not a terminal.
var (
	stdout io.Writer = color.Output
	stderr io.Writer = color.Error

	// Debug is called from download workers
	writeMu sync.Mutex
)

// level is one kind of status line: a colored symbol followed by the message.
type level struct {
	color  *color.Color
	symbol string
}

var (
	levelSuccess = level{color.New(color.FgGreen, color.Bold), "✓"}
	levelError   = level{color.New(color.FgRed, color.Bold), "✗"}
	levelWarning = level{color.New(color.FgYellow, color.Bold), "⚠"}
	levelInfo    = level{color.New(color.FgCyan), "→"}
	levelDebug   = level{color.New(color.FgHiBlack), "·"}

	highlightColor = color.New(color.FgCyan, color.Bold)
	versionColor   = color.New(color.FgMagenta, color.Bold)
)

func (l level) print(w io.Writer, format string, args ...interface{}) {
	writeMu.Lock()
	defer writeMu.Unlock()
	_, _ = l.color.Fprintf(w, "%s %s\n", l.symbol, fmt.Sprintf(format, args...))
}

// Success prints a success message in green with a checkmark
func Success(format string, args ...interface{}) {
	levelSuccess.print(stdout, format, args...)
}

// Error prints an error message in red with an X
func Error(format string, args ...interface{}) {
	levelError.print(stdout, format, args...)
}

// Warning prints a warning message in yellow with a warning symbol
func Warning(format string, args ...interface{}) {
	levelWarning.print(stdout, format, args...)
}

// Info prints an info message in cyan with an arrow
func Info(format string, args ...interface{}) {
	levelInfo.print(stdout, format, args...)
}

// Highlight renders a component name or path for emphasis inside a message.
func Highlight(text string) string {
	return highlightColor.Sprint(text)
}

// HighlightVersion renders a runtime version inside a message.
func HighlightVersion(version string) string {
	return versionColor.Sprint(version)
}
