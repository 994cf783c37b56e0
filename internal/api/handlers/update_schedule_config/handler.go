package update_schedule_config

import (
	"errors"
	"net/http"

	"github.com/matutevip/ginecoschedule-sub001/internal/api/handlers"
	scheduleService "github.com/matutevip/ginecoschedule-sub001/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud invalido"
	msgInvalidConfig      = "configuracion de agenda invalida"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle PATCH /api/v1/schedule-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /schedule-config - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cfg, err := h.service.GetConfig(r.Context())
	if err != nil {
		h.logger.Error("PATCH /schedule-config - failed to load config: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	occasional, vacations, err := req.apply(cfg)
	if err != nil {
		h.logger.Warn("PATCH /schedule-config - failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdateConfig(r.Context(), cfg, occasional, vacations); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidConfig):
			handlers.RespondBadRequest(w, msgInvalidConfig)
		default:
			h.logger.Error("PATCH /schedule-config - failed to update: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /schedule-config - updated")
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
