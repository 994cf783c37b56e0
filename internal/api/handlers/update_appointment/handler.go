package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/matutevip/ginecoschedule-sub001/internal/api/handlers"
	updateAppointment "github.com/matutevip/ginecoschedule-sub001/internal/usecase/update_appointment"
)

const (
	msgInvalidID           = "identificador invalido"
	msgInvalidRequestBody  = "cuerpo de la solicitud invalido"
	msgInvalidDateOrTime   = "fecha, hora o estado invalido"
	msgAppointmentNotFound = "turno no encontrado"
	msgAlreadyTerminal     = "el turno ya esta finalizado"
	msgSlotNotAvailable    = "el horario elegido no esta disponible"
)

var errInvalidStatus = errors.New("update_appointment handler: invalid status")

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// ConflictResponse is the 409 body carrying the violated rule.
type ConflictResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// Handle PATCH /api/v1/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/%d - invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(id)
	if err != nil {
		h.logger.Warn("PATCH /appointments/%d - failed to parse request: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *updateAppointment.SlotConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("PATCH /appointments/%d - slot not available (%s)", id, conflict.Reason)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Error:  msgSlotNotAvailable,
				Reason: string(conflict.Reason),
			})

		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, updateAppointment.ErrAlreadyTerminal):
			handlers.RespondError(w, http.StatusConflict, msgAlreadyTerminal)

		case errors.Is(err, updateAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDateOrTime)

		default:
			h.logger.Error("PATCH /appointments/%d - failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/%d - updated, status=%s", id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
