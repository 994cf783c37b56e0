package cancel_by_token

import "errors"

var (
	// ErrInvalidInput is returned for an empty or malformed token.
	ErrInvalidInput = errors.New("cancel_by_token: invalid input data")

	// ErrTokenNotFound is returned when no appointment carries the token.
	ErrTokenNotFound = errors.New("cancel_by_token: token not found")

	// ErrTokenExpired is returned inside the 48-hour window before the
	// appointment, when self-service cancellation closes.
	ErrTokenExpired = errors.New("cancel_by_token: token has expired")

	// ErrAlreadyTerminal is returned when the appointment no longer holds
	// its slot.
	ErrAlreadyTerminal = errors.New("cancel_by_token: appointment is already terminal")

	// ErrInternal is returned for unexpected failures.
	ErrInternal = errors.New("cancel_by_token: internal error")
)
