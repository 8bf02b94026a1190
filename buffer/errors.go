package buffer

import (
	"errors"
	"fmt"
)

// Sentinel errors for buffer operations. Typed errors below match these
// through errors.Is so callers can classify without unpacking fields.
var (
	// ErrRowOutOfBounds reports a row index past the last line.
	ErrRowOutOfBounds = errors.New("row out of bounds")

	// ErrColOutOfBounds reports a column index past the end of a line.
	ErrColOutOfBounds = errors.New("col out of bounds")

	// ErrMarkDestroyed reports an operation on a destroyed mark ID.
	ErrMarkDestroyed = errors.New("mark destroyed")

	// ErrInvalidRange reports a splice whose start comes after its end.
	ErrInvalidRange = errors.New("invalid range")
)

// RowError reports a row index outside the buffer. Row is signed: region
// back-translation can produce a negative row, which is carried here for
// diagnostics.
type RowError struct {
	Row   int
	Limit int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row out of bounds: %d (max %d)", e.Row, e.Limit)
}

// Is reports whether target is ErrRowOutOfBounds.
func (e *RowError) Is(target error) bool {
	return target == ErrRowOutOfBounds
}

// ColError reports a column index outside a line. Col is signed for the
// same reason as RowError.Row.
type ColError struct {
	Col   int
	Limit int
}

func (e *ColError) Error() string {
	return fmt.Sprintf("col out of bounds: %d (max %d)", e.Col, e.Limit)
}

// Is reports whether target is ErrColOutOfBounds.
func (e *ColError) Is(target error) bool {
	return target == ErrColOutOfBounds
}

// HostError wraps a failure from the host platform backing a buffer
// (lock acquisition, dispatch, external API calls). It is opaque to
// callers except for display.
type HostError struct {
	Op  string
	Err error
}

func (e *HostError) Error() string {
	return fmt.Sprintf("host: %s: %v", e.Op, e.Err)
}

func (e *HostError) Unwrap() error {
	return e.Err
}
