package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jvmrepo/jvmrepo/src/internal/platform"
)

// ExecutableNotFoundError is returned when no executable layout resolves inside a runtime directory.
type ExecutableNotFoundError struct {
	Dir   string
	Tried []string
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("java executable not found in %s (tried %s)", e.Dir, strings.Join(e.Tried, ", "))
}

// IsExecutableNotFound checks if an error indicates a missing executable.
func IsExecutableNotFound(err error) bool {
	var target *ExecutableNotFoundError
	return errors.As(err, &target)
}

// ArtifactMalformedError is returned when an installed runtime that should be
// probeable on this host does not report its identity.
type ArtifactMalformedError struct {
	Executable string
	Err        error
}

func (e *ArtifactMalformedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unable to read java information from %s", e.Executable)
	}
	return fmt.Sprintf("unable to read java information from %s: %v", e.Executable, e.Err)
}

func (e *ArtifactMalformedError) Unwrap() error {
	return e.Err
}

// IsArtifactMalformed checks if an error indicates a broken download.
func IsArtifactMalformed(err error) bool {
	var target *ArtifactMalformedError
	return errors.As(err, &target)
}

// InstallError carries the context of a failed install: which component,
// for which platform, and the underlying cause.
type InstallError struct {
	Component string
	Platform  platform.Platform
	Err       error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("install %s for %s: %v", e.Component, e.Platform, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// ErrComponentNotInstalled is returned by Find when no managed runtime matches.
var ErrComponentNotInstalled = errors.New("component is not installed")
