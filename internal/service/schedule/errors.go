package schedule

import "errors"

var (
	ErrBlockedDayNotFound = errors.New("service.schedule: blocked day not found")
	ErrInvalidConfig      = errors.New("service.schedule: invalid schedule config")
	ErrInternal           = errors.New("service.schedule: internal error")
)
