package get_appointment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/matutevip/ginecoschedule-sub001/internal/api/handlers"
	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	appointmentsService "github.com/matutevip/ginecoschedule-sub001/internal/service/appointments"
)

const (
	msgInvalidID           = "identificador invalido"
	msgAppointmentNotFound = "turno no encontrado"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// AppointmentResponse is the single-appointment admin view.
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

// Handle GET /api/v1/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	appt, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		default:
			h.logger.Error("GET /appointments/%d - failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := AppointmentResponse{
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
		resp.ExternalEventID = *appt.ExternalEventID
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}
