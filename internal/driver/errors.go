package driver

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPeriod is returned by Start for a non-positive period.
	ErrInvalidPeriod = errors.New("driver: period must be positive")

	// ErrNilOperation is returned by Start when no operation is given.
	ErrNilOperation = errors.New("driver: nil operation")
)

// PanicError carries a panic recovered from a tick.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("tick panicked: %v", e.Value)
}

// TickError reports a failed tick to the error sink.
type TickError struct {
	// RunID identifies the Handle that ran the tick.
	RunID string

	// Tick is the 1-based tick number; tick 1 is the synchronous first run.
	Tick uint64

	Err error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d (run=%s): %v", e.Tick, e.RunID, e.Err)
}

func (e *TickError) Unwrap() error {
	return e.Err
}

// IsPanic reports whether err wraps a recovered panic.
func IsPanic(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}
