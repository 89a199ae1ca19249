package vram

import (
	"errors"
	"fmt"
)

// Common errors returned by vram operations.
var (
	// ErrNoBuffers is returned when the megabyte budget does not hold a
	// single buffer of the requested dimensions.
	ErrNoBuffers = errors.New("vram: budget too small for a single buffer")

	// ErrSessionStopped is returned when an action reaches a stopped session.
	ErrSessionStopped = errors.New("vram: session stopped")

	// ErrInvalidFrameSize is returned when a frame is composed or saved
	// with a non-positive width or height.
	ErrInvalidFrameSize = errors.New("vram: invalid frame size")
)

// UsageError reports malformed or missing command-line arguments or an
// invalid environment setting. The command prints Usage and exits with 1.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return "vram: usage: " + e.Reason
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Reason: fmt.Sprintf(format, args...)}
}

// InitError reports a failure to bring up the window, the GPU device or the
// buffer pool. Err carries the backend diagnostic.
type InitError struct {
	Stage string
	Err   error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("vram: %s initialization failed: %v", e.Stage, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
