package calendar

import "errors"

var (
	// ErrDisabled is returned when the calendar bridge is switched off in
	// configuration. Callers treat it like any other push failure: log and
	// move on.
	ErrDisabled = errors.New("calendar client: disabled")

	// ErrEventNotFound is returned when the referenced event no longer
	// exists in the external calendar.
	ErrEventNotFound = errors.New("calendar client: event not found")

	// ErrRateLimited is returned on HTTP 429. Retryable on a later pass,
	// never fatal.
	ErrRateLimited = errors.New("calendar client: rate limited")

	// ErrInternal is returned on transport-level failures.
	ErrInternal = errors.New("calendar client: internal error")

	// ErrInvalidResponse is returned when the service answers with an
	// unexpected status or body.
	ErrInvalidResponse = errors.New("calendar client: invalid response")
)
