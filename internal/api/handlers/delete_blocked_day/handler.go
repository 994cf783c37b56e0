package delete_blocked_day

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/matutevip/ginecoschedule-sub001/internal/api/handlers"
	scheduleService "github.com/matutevip/ginecoschedule-sub001/internal/service/schedule"
)

const (
	msgInvalidID = "identificador invalido"
	msgNotFound  = "dia bloqueado no encontrado"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle DELETE /api/v1/blocked-days/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeleteBlockedDay(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrBlockedDayNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("DELETE /blocked-days/%d - failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /blocked-days/%d - deleted", id)
	handlers.RespondNoContent(w)
}
