package create_appointment

import (
	"errors"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

var (
	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrDateInPast is returned when the requested date is before today.
	ErrDateInPast = errors.New("create_appointment: date is in the past")

	// ErrSlotNotAvailable is returned when the requested slot violates a
	// booking rule. The concrete rule travels in SlotConflictError.
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInternal is returned for unexpected failures.
	ErrInternal = errors.New("create_appointment: internal error")
)

// SlotConflictError carries the violated rule alongside the sentinel so
// handlers can echo it to the caller.
type SlotConflictError struct {
	Reason domain.ConflictReason
}

func (e *SlotConflictError) Error() string {
	return "create_appointment: slot is not available: " + string(e.Reason)
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotNotAvailable
}
