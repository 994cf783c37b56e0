package schedule

import "errors"

var (
	// ErrConfigNotFound is returned when the singleton schedule row is
	// missing (fresh database).
	ErrConfigNotFound = errors.New("schedule.repository: schedule config not found")

	// ErrBlockedDayNotFound is returned when no blocked day matches.
	ErrBlockedDayNotFound = errors.New("schedule.repository: blocked day not found")

	// ErrBuildQuery is returned when the SQL query cannot be built.
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute.
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
