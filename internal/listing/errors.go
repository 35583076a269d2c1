package listing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIndent is returned for an indent width that is not positive.
	ErrInvalidIndent = errors.New("indent width must be a positive integer")
	// ErrInvalidSeparator is returned for a separator other than '\' or '/'.
	ErrInvalidSeparator = errors.New(`path separator must be '\' or '/'`)
	// ErrDepthJump is returned in strict mode when an entry is nested more
	// than one level below the previous one.
	ErrDepthJump = errors.New("depth increases by more than one level")
	// ErrMisaligned is returned in strict mode when the leading run is not a
	// multiple of the indent width.
	ErrMisaligned = errors.New("indentation is not a multiple of the indent width")
)

// LineError ties a conversion error to the input line that caused it.
type LineError struct {
	Line int    // 1-based line number
	Text string // The offending line
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
