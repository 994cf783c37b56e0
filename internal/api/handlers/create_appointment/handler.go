package create_appointment

import (
	"errors"
	"net/http"

	"github.com/matutevip/ginecoschedule-sub001/internal/api/handlers"
	createAppointment "github.com/matutevip/ginecoschedule-sub001/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud invalido"
	msgInvalidDateOrTime  = "fecha u hora invalida, se espera YYYY-MM-DD y HH:MM"
	msgInvalidInput       = "datos de la solicitud invalidos"
	msgDateInPast         = "la fecha ya paso"
	msgSlotNotAvailable   = "el horario elegido no esta disponible"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// ConflictResponse is the 409 body carrying the violated rule.
type ConflictResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *createAppointment.SlotConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /appointments - slot not available: %s %s (%s)",
				req.Date, req.StartTime, conflict.Reason)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Error:  msgSlotNotAvailable,
				Reason: string(conflict.Reason),
			})

		case errors.Is(err, createAppointment.ErrDateInPast):
			h.logger.Warn("POST /appointments - date in past: %s", req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - failed to create: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - created id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
