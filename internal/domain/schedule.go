package domain

import (
	"time"

	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

// ScheduleConfig is the singleton weekly schedule of the practice.
type ScheduleConfig struct {
	ID       int64
	Workdays []Weekday
	// Default open/close window applied to regular workdays and to
	// occasional workdays without their own hours.
	OpenTime  types.TimeString
	CloseTime types.TimeString
	// ExtendedPapDuration selects the newer schedule generation in which
	// the pap-smear bundle occupies 30 minutes instead of 20.
	ExtendedPapDuration bool
	UpdatedAt           time.Time
}

// IsWorkday reports whether the weekday belongs to the regular weekly
// pattern.
func (c *ScheduleConfig) IsWorkday(w Weekday) bool {
	for _, d := range c.Workdays {
		if d == w {
			return true
		}
	}
	return false
}

// BlockedDay is a specific date explicitly closed for bookings. It overrides
// every other day classification.
type BlockedDay struct {
	ID        int64
	Date      time.Time // day granularity
	Reason    string
	CreatedAt time.Time
}

// OccasionalWorkday is a date outside the weekly pattern explicitly opened
// for bookings, optionally with its own hours.
type OccasionalWorkday struct {
	ID        int64
	Date      time.Time
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
}

// VacationPeriod is an inclusive date range during which the practice is
// closed.
type VacationPeriod struct {
	ID        int64
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

// Covers reports whether the date falls inside the vacation range.
func (v *VacationPeriod) Covers(date time.Time) bool {
	d := DayOf(date)
	return !d.Before(DayOf(v.StartDate)) && !d.After(DayOf(v.EndDate))
}

// DayOf truncates a time to day granularity, preserving the location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether both times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DayKind classifies a calendar date.
type DayKind string

const (
	DayBlocked           DayKind = "blocked"
	DayRegularWorkday    DayKind = "regular_workday"
	DayOccasionalWorkday DayKind = "occasional_workday"
	DayNonWorkday        DayKind = "non_workday"
)

// DayType is the resolved classification of a date plus the applicable
// business hours (zero for closed kinds).
type DayType struct {
	Kind      DayKind
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// IsOpen reports whether the day accepts bookings at all.
func (d DayType) IsOpen() bool {
	return d.Kind == DayRegularWorkday || d.Kind == DayOccasionalWorkday
}

// ResolveDayType classifies a date. blocked, vacation and occasional are the
// rows covering this specific date, nil when absent; callers fetch them
// beforehand. Precedence is fixed: an explicitly blocked date (including
// vacation ranges) always wins, then the regular weekly pattern, then
// occasional workdays, then closed.
func ResolveDayType(date time.Time, cfg *ScheduleConfig, blocked *BlockedDay, vacation *VacationPeriod, occasional *OccasionalWorkday) DayType {
	if blocked != nil || vacation != nil {
		return DayType{Kind: DayBlocked}
	}

	if cfg.IsWorkday(WeekdayFromTime(date.Weekday())) {
		return DayType{
			Kind:      DayRegularWorkday,
			OpenTime:  cfg.OpenTime,
			CloseTime: cfg.CloseTime,
		}
	}

	if occasional != nil {
		open, close := cfg.OpenTime, cfg.CloseTime
		if occasional.OpenTime != nil && occasional.CloseTime != nil {
			open, close = *occasional.OpenTime, *occasional.CloseTime
		}
		return DayType{
			Kind:      DayOccasionalWorkday,
			OpenTime:  open,
			CloseTime: close,
		}
	}

	return DayType{Kind: DayNonWorkday}
}
