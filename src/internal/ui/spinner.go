package ui

import (
	"time"

	"github.com/briandowns/spinner"
)

// Spinner wraps briandowns/spinner with our color scheme.
// On a non-terminal stdout the animation is skipped and only the final line is printed.
type Spinner struct {
	spinner     *spinner.Spinner
	interactive bool
}

// NewSpinner creates a new spinner with a message
func NewSpinner(message string) *Spinner {
	s := spinner.New(
		spinner.CharSets[14], // dots style
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+message),
		spinner.WithWriter(stdout),
	)
	return &Spinner{spinner: s, interactive: IsInteractive()}
}

// Start starts the spinner
func (s *Spinner) Start() {
	if !s.interactive {
		return
	}
	s.spinner.Start()
}

// Stop stops the spinner
func (s *Spinner) Stop() {
	s.spinner.Stop()
}

// Success stops the spinner and shows a success message
func (s *Spinner) Success(message string) {
	s.spinner.Stop()
	levelSuccess.print(stdout, "%s", message)
}

// Error stops the spinner and shows an error message
func (s *Spinner) Error(message string) {
	s.spinner.Stop()
	levelError.print(stdout, "%s", message)
}

// WithSpinner runs a function with a spinner
// Returns the spinner so you can call Success/Error on it
func WithSpinner(message string, fn func() error) error {
	s := NewSpinner(message)
	s.Start()

	err := fn()

	if err != nil {
		s.Error(message + " failed")
		return err
	}

	s.Success(message)
	return nil
}
