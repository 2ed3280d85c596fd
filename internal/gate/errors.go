package gate

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes gate failures.
type ErrorCode string

const (
	// ErrCodeSample indicates the Sampler failed. The Gate's state is unchanged.
	ErrCodeSample ErrorCode = "SAMPLE_FAILED"

	// ErrCodeHandler indicates the Handler failed after the Gate recorded the
	// new value.
	ErrCodeHandler ErrorCode = "HANDLER_FAILED"

	// ErrCodeOperation indicates a non-Gate operation in a Group failed.
	ErrCodeOperation ErrorCode = "OPERATION_FAILED"
)

// Error reports a failure inside a Gate.
type Error struct {
	Code ErrorCode

	// Slot is the Gate's position in the innermost Group, or -1 when the
	// Gate was run on its own.
	Slot int

	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Slot >= 0 {
		return fmt.Sprintf("%s: slot %d: %v", e.Code, e.Slot, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// withSlot records the slot on an unannotated gate error. Errors from nested
// Groups keep their inner slot.
func withSlot(err error, slot int) error {
	var ge *Error
	if errors.As(err, &ge) {
		if ge.Slot < 0 {
			cp := *ge
			cp.Slot = slot
			return &cp
		}
		return err
	}
	return &Error{Code: ErrCodeOperation, Slot: slot, Err: err}
}

// IsSampleError reports whether err is a Sampler failure.
func IsSampleError(err error) bool {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code == ErrCodeSample
	}
	return false
}

// IsHandlerError reports whether err is a Handler failure.
func IsHandlerError(err error) bool {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code == ErrCodeHandler
	}
	return false
}

// SlotOf returns the failing slot recorded on err.
func SlotOf(err error) (int, bool) {
	var ge *Error
	if errors.As(err, &ge) && ge.Slot >= 0 {
		return ge.Slot, true
	}
	return 0, false
}
