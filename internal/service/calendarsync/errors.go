package calendarsync

import "errors"

var (
	ErrCalendarDisabled = errors.New("service.calendarsync: calendar integration is disabled")
	ErrSweepFailed      = errors.New("service.calendarsync: reconciliation sweep failed")
)
