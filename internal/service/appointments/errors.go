package appointments

import "errors"

var (
	ErrAppointmentNotFound = errors.New("service.appointments: appointment not found")
	ErrAlreadyTerminal     = errors.New("service.appointments: appointment is already terminal")
	ErrInvalidStatus       = errors.New("service.appointments: invalid status")
	ErrInternal            = errors.New("service.appointments: internal error")
)
