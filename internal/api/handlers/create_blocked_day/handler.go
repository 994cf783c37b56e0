package create_blocked_day

import (
	"net/http"
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/api/handlers"
	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud invalido"
	msgInvalidDate        = "formato de fecha invalido, se espera YYYY-MM-DD"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// CreateRequest is the POST body.
type CreateRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason,omitempty"`
}

// BlockedDayResponse is the created record.
type BlockedDayResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// Handle POST /api/v1/blocked-days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocked-days - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	created, err := h.service.CreateBlockedDay(r.Context(), &domain.BlockedDay{
		Date:   date,
		Reason: req.Reason,
	})
	if err != nil {
		h.logger.Error("POST /blocked-days - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /blocked-days - blocked %s", req.Date)
	handlers.RespondJSON(w, http.StatusCreated, BlockedDayResponse{
		ID:        created.ID,
		Date:      created.Date.Format(domain.DateFormat),
		Reason:    created.Reason,
		CreatedAt: created.CreatedAt.Format(time.RFC3339),
	})
}
