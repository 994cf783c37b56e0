package update_appointment

import (
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	updateAppointment "github.com/matutevip/ginecoschedule-sub001/internal/usecase/update_appointment"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

// UpdateAppointmentRequest is the PATCH body. Absent fields stay untouched.
type UpdateAppointmentRequest struct {
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// AppointmentResponse is the appointment after the change.
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	PatientName     string `json:"patientName"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	ServiceType     string `json:"serviceType"`
	Status          string `json:"status"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request to the use case model.
func (r *UpdateAppointmentRequest) ToUseCaseRequest(id int64) (*updateAppointment.Request, error) {
	req := &updateAppointment.Request{ID: id}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.NewDate = &date
	}
	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.NewStart = &start
	}
	if r.Status != nil {
		status, ok := domain.ParseAppointmentStatus(*r.Status)
		if !ok {
			return nil, errInvalidStatus
		}
		req.NewStatus = &status
	}

	return req, nil
}

// FromUseCaseResponse converts the use case response to the HTTP shape.
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		PatientName:     resp.PatientName,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		ServiceType:     string(resp.Service),
		Status:          string(resp.Status),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
