package update_appointment

import (
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

// Request changes an appointment's time, status or both. Nil fields stay
// untouched.
type Request struct {
	ID        int64
	NewDate   *time.Time
	NewStart  *types.TimeString
	NewStatus *domain.AppointmentStatus
}

// Response is the appointment after the change.
type Response struct {
	ID              int64
	PatientName     string
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Service         domain.ServiceType
	Status          domain.AppointmentStatus
	UpdatedAt       time.Time
}
