package get_appointments

import (
	"net/http"
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/api/handlers"
	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

const (
	msgInvalidDate   = "formato de fecha invalido, se espera YYYY-MM-DD"
	msgInvalidStatus = "estado desconocido"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle GET /api/v1/appointments?startDate=&endDate=&status=&includeTerminal=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	appts, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /appointments - failed to list: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := ListResponse{Appointments: make([]AppointmentResponse, 0, len(appts))}
	for _, appt := range appts {
		resp.Appointments = append(resp.Appointments, FromDomain(appt))
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) parseFilter(w http.ResponseWriter, r *http.Request) (domain.AppointmentsFilter, bool) {
	var filter domain.AppointmentsFilter
	query := r.URL.Query()

	if raw := query.Get("startDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return filter, false
		}
		filter.StartDate = &date
	}
	if raw := query.Get("endDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return filter, false
		}
		filter.EndDate = &date
	}
	if raw := query.Get("status"); raw != "" {
		status, ok := domain.ParseAppointmentStatus(raw)
		if !ok {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return filter, false
		}
		filter.Status = &status
	}
	filter.IncludeTerminal = query.Get("includeTerminal") == "true"

	return filter, true
}
