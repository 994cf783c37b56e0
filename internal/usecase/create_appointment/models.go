package create_appointment

import (
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

// Request is one booking attempt.
type Request struct {
	PatientName string
	Email       string
	Phone       string
	Date        time.Time
	StartTime   types.TimeString
	Service     domain.ServiceType
	Notes       string
	// CreatedBy defaults to the patient. Calendar-sourced requests skip
	// the availability rules and carry no cancellation token.
	CreatedBy domain.CreatedBy
}

// Response is the created appointment. CancellationToken is only ever
// exposed here and in the confirmation email.
type Response struct {
	ID                int64
	PatientName       string
	Email             string
	Phone             string
	Date              time.Time
	StartTime         types.TimeString
	DurationMinutes   int
	Service           domain.ServiceType
	Status            domain.AppointmentStatus
	Notes             string
	CancellationToken string
	TokenExpiresAt    *time.Time
	CreatedAt         time.Time
}
