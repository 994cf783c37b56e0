package create_appointment

import (
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	createAppointment "github.com/matutevip/ginecoschedule-sub001/internal/usecase/create_appointment"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

// CreateAppointmentRequest is the HTTP request model.
type CreateAppointmentRequest struct {
	PatientName string `json:"patientName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Date        string `json:"date"`      // "2026-09-15"
	StartTime   string `json:"startTime"` // "09:20"
	ServiceType string `json:"serviceType"`
	Notes       string `json:"notes,omitempty"`
}

// AppointmentResponse is the HTTP response model. The cancellation token is
// never part of it; the token travels only in the confirmation email.
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
	CreatedAt       string `json:"createdAt"`
}

// ToUseCaseRequest converts the HTTP request to the use case model.
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		PatientName: r.PatientName,
		Email:       r.Email,
		Phone:       r.Phone,
		Date:        date,
		StartTime:   start,
		Service:     domain.ServiceType(r.ServiceType),
		Notes:       r.Notes,
		CreatedBy:   domain.CreatedByPatient,
	}, nil
}

// FromUseCaseResponse converts the use case response to the HTTP shape.
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		PatientName:     resp.PatientName,
		Email:           resp.Email,
		Phone:           resp.Phone,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		ServiceType:     string(resp.Service),
		Status:          string(resp.Status),
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
