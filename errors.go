package csvmask

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by [Scanner].
var (
	ErrInputTooSmall    = errors.New("input is shorter than one window")
	ErrUnhandledTail    = errors.New("input length is not a multiple of the window size")
	ErrInvalidPartition = errors.New("partition is not aligned to the window size")
)

// TailError reports a trailing partial window rejected by [TailReject].
type TailError struct {
	Length    int // Total buffer length
	TailBytes int // Bytes in the final partial window
}

// Error returns a formatted error message with the tail size.
func (e *TailError) Error() string {
	return fmt.Sprintf("buffer of %d bytes ends with a %d-byte partial window: %v", e.Length, e.TailBytes, ErrUnhandledTail)
}

// Unwrap returns [ErrUnhandledTail] for use with [errors.Is].
func (e *TailError) Unwrap() error {
	return ErrUnhandledTail
}
