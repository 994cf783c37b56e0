package cancel_by_token

import (
	"errors"
	"net/http"

	"github.com/matutevip/ginecoschedule-sub001/internal/api/handlers"
	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	cancelByToken "github.com/matutevip/ginecoschedule-sub001/internal/usecase/cancel_by_token"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud invalido"
	msgMissingToken       = "falta el token de cancelacion"
	msgTokenNotFound      = "token de cancelacion desconocido"
	msgTokenExpired       = "el plazo para cancelar por este medio ya vencio, por favor comunicate con el consultorio"
	msgAlreadyTerminal    = "el turno ya fue cancelado"
)

type Handler struct {
	useCase CancelByTokenUseCase
	logger  Logger
}

func NewHandler(useCase CancelByTokenUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// CancelRequest is the POST body.
type CancelRequest struct {
	Token string `json:"token"`
}

// CancelResponse confirms what was cancelled.
type CancelResponse struct {
	ID          int64  `json:"id"`
	PatientName string `json:"patientName"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	ServiceType string `json:"serviceType"`
	Status      string `json:"status"`
}

// Handle POST /api/v1/appointments/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/cancel - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, cancelByToken.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingToken)

		case errors.Is(err, cancelByToken.ErrTokenNotFound):
			handlers.RespondNotFound(w, msgTokenNotFound)

		case errors.Is(err, cancelByToken.ErrTokenExpired):
			handlers.RespondError(w, http.StatusGone, msgTokenExpired)

		case errors.Is(err, cancelByToken.ErrAlreadyTerminal):
			handlers.RespondError(w, http.StatusConflict, msgAlreadyTerminal)

		default:
			h.logger.Error("POST /appointments/cancel - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/cancel - appointment id=%d cancelled", result.ID)
	handlers.RespondJSON(w, http.StatusOK, CancelResponse{
		ID:          result.ID,
		PatientName: result.PatientName,
		Date:        result.Date.Format(domain.DateFormat),
		StartTime:   result.StartTime.String(),
		ServiceType: string(result.Service),
		Status:      string(result.Status),
	})
}
