package get_appointments

import (
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

// AppointmentResponse is one appointment in the admin listing. Tokens never
// appear here.
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	PatientName     string `json:"patientName"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	ServiceType     string `json:"serviceType"`
	Status          string `json:"status"`
	Notes           string `json:"notes,omitempty"`
	ExternalEventID string `json:"externalEventId,omitempty"`
	CreatedBy       string `json:"createdBy"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ListResponse wraps the listing.
type ListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomain converts one appointment to the HTTP shape.
func FromDomain(appt *domain.Appointment) AppointmentResponse {
	out := AppointmentResponse{
		ID:              appt.ID,
		PatientName:     appt.PatientName,
		Email:           appt.Email,
		Phone:           appt.Phone,
		Date:            appt.Date.Format(domain.DateFormat),
		StartTime:       appt.StartTime.String(),
		DurationMinutes: appt.DurationMinutes,
		ServiceType:     string(appt.ServiceType),
		Status:          string(appt.Status),
		Notes:           appt.Notes,
		CreatedBy:       string(appt.CreatedBy),
		CreatedAt:       appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       appt.UpdatedAt.Format(time.RFC3339),
	}
	if appt.ExternalEventID != nil {
		out.ExternalEventID = *appt.ExternalEventID
	}
	return out
}
