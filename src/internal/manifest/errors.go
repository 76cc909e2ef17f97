package manifest

import (
	"errors"
	"fmt"
)

// ParseError is returned when a manifest document is malformed or truncated.
type ParseError struct {
	Path string // Empty when parsing from memory
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed manifest: %v", e.Err)
	}
	return fmt.Sprintf("malformed manifest %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError checks if an error indicates a malformed manifest.
func IsParseError(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}
