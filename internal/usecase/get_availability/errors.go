package get_availability

import "errors"

var (
	ErrInvalidInput = errors.New("get_availability: invalid input data")
	ErrInternal     = errors.New("get_availability: internal error")
)
