package validate_token

import (
	"errors"
	"net/http"

	"github.com/matutevip/ginecoschedule-sub001/internal/api/handlers"
	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	cancelByToken "github.com/matutevip/ginecoschedule-sub001/internal/usecase/cancel_by_token"
)

const (
	msgMissingToken    = "falta el parametro token"
	msgTokenNotFound   = "token de cancelacion desconocido"
	msgTokenExpired    = "el plazo para cancelar por este medio ya vencio"
	msgAlreadyTerminal = "el turno ya fue cancelado"
)

type Handler struct {
	useCase ValidateTokenUseCase
	logger  Logger
}

func NewHandler(useCase ValidateTokenUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// ValidateResponse shows the appointment a valid token points at.
type ValidateResponse struct {
	Valid       bool   `json:"valid"`
	ID          int64  `json:"id,omitempty"`
	PatientName string `json:"patientName,omitempty"`
	Date        string `json:"date,omitempty"`
	StartTime   string `json:"startTime,omitempty"`
	ServiceType string `json:"serviceType,omitempty"`
}

// Handle GET /api/v1/appointments/validate-token?token=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	result, err := h.useCase.Validate(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, cancelByToken.ErrTokenNotFound):
			handlers.RespondNotFound(w, msgTokenNotFound)

		case errors.Is(err, cancelByToken.ErrTokenExpired):
			handlers.RespondError(w, http.StatusGone, msgTokenExpired)

		case errors.Is(err, cancelByToken.ErrAlreadyTerminal):
			handlers.RespondError(w, http.StatusConflict, msgAlreadyTerminal)

		case errors.Is(err, cancelByToken.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingToken)

		default:
			h.logger.Error("GET /appointments/validate-token - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ValidateResponse{
		Valid:       true,
		ID:          result.ID,
		PatientName: result.PatientName,
		Date:        result.Date.Format(domain.DateFormat),
		StartTime:   result.StartTime.String(),
		ServiceType: string(result.Service),
	})
}
