package domain

import (
	"time"

	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

// AppointmentStatus represents the status of an appointment.
type AppointmentStatus string

const (
	StatusPending                 AppointmentStatus = "pending"
	StatusConfirmed               AppointmentStatus = "confirmed"
	StatusAttended                AppointmentStatus = "attended"
	StatusCancelledByPatient      AppointmentStatus = "cancelled_by_patient"
	StatusCancelledByProfessional AppointmentStatus = "cancelled_by_professional"
	StatusNoShow                  AppointmentStatus = "no_show"
)

// CreatedBy records which writer originated the appointment.
type CreatedBy string

const (
	CreatedByPatient  CreatedBy = "patient"
	CreatedByAdmin    CreatedBy = "admin"
	CreatedByCalendar CreatedBy = "external_calendar"
)

// ParseAppointmentStatus validates a wire value against the closed status set.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusAttended,
		StatusCancelledByPatient, StatusCancelledByProfessional, StatusNoShow:
		return AppointmentStatus(s), true
	}
	return "", false
}

// Appointment is a booked slot in the practitioner's agenda.
type Appointment struct {
	ID              int64
	PatientName     string
	Email           string
	Phone           string
	Date            time.Time // day granularity, local timezone
	StartTime       types.TimeString
	DurationMinutes int
	ServiceType     ServiceType
	Status          AppointmentStatus
	Notes           string

	CancellationToken *string
	TokenExpiresAt    *time.Time

	// ExternalEventID references the mirrored event in the external
	// calendar; nil when the push failed or the calendar is disabled.
	ExternalEventID *string
	CreatedBy       CreatedBy

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the appointment still occupies its slot.
// Attended appointments keep occupying the slot for conflict purposes.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed || a.Status == StatusAttended
}

// IsTerminal reports whether the appointment vacated its slot. Terminal
// records are kept for history and never resurrected.
func (a *Appointment) IsTerminal() bool {
	return !a.IsActive()
}

// EndTime returns the end of the occupied interval.
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// StartInstant anchors the appointment on the practice timezone.
func (a *Appointment) StartInstant(loc *time.Location) (time.Time, error) {
	return a.StartTime.At(a.Date, loc)
}

// IsExternallySourced reports whether the external calendar is the
// authoritative origin of this record. Externally sourced writes bypass the
// availability checker.
func (a *Appointment) IsExternallySourced() bool {
	return a.CreatedBy == CreatedByCalendar
}

// CancellationTokenExpiry computes the instant a fresh token stops working:
// a fixed lead time before the appointment itself.
func CancellationTokenExpiry(startInstant time.Time) time.Time {
	return startInstant.Add(-TokenExpiryLeadHours * time.Hour)
}

// TerminalStatuses lists the statuses that vacate a slot.
var TerminalStatuses = []AppointmentStatus{
	StatusCancelledByPatient,
	StatusCancelledByProfessional,
	StatusNoShow,
}

// AppointmentsFilter narrows admin listings and reconciliation reads.
type AppointmentsFilter struct {
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *AppointmentStatus
	IncludeTerminal bool
}
