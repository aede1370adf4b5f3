package completion

import "fmt"

// CursorOutOfRangeError is returned when the cursor offset lies outside the line.
type CursorOutOfRangeError struct {
	Position int
}

func (e *CursorOutOfRangeError) Error() string {
	return fmt.Sprintf("cursor position %d is out of range", e.Position)
}

// ArgumentMissingValueError is returned when a keyword argument that takes a
// value is the last word on the line.
type ArgumentMissingValueError struct {
	// Argument is the word as it was typed, dashes included.
	Argument string
}

func (e *ArgumentMissingValueError) Error() string {
	return fmt.Sprintf("argument %s is missing a value", e.Argument)
}

// PathCompletionError wraps a failure to list candidate paths.
type PathCompletionError struct {
	Partial string
	Err     error
}

func (e *PathCompletionError) Error() string {
	return fmt.Sprintf("failed to complete path %q: %v", e.Partial, e.Err)
}

func (e *PathCompletionError) Unwrap() error {
	return e.Err
}
