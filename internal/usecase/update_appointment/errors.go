package update_appointment

import (
	"errors"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

var (
	ErrInvalidInput        = errors.New("update_appointment: invalid input data")
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")
	ErrAlreadyTerminal     = errors.New("update_appointment: appointment is already terminal")
	ErrSlotNotAvailable    = errors.New("update_appointment: slot is not available")
	ErrInternal            = errors.New("update_appointment: internal error")
)

// SlotConflictError carries the violated rule alongside the sentinel.
type SlotConflictError struct {
	Reason domain.ConflictReason
}

func (e *SlotConflictError) Error() string {
	return "update_appointment: slot is not available: " + string(e.Reason)
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotNotAvailable
}
