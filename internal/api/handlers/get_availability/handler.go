package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/api/handlers"
	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	getAvailability "github.com/matutevip/ginecoschedule-sub001/internal/usecase/get_availability"
)

const (
	msgMissingDate    = "falta el parametro date, se espera YYYY-MM-DD"
	msgInvalidDate    = "formato de fecha invalido, se espera YYYY-MM-DD"
	msgInvalidService = "tipo de servicio desconocido"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD&serviceType=consultation
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /availability - invalid date %q", rawDate)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	service := domain.ServiceConsultation
	if raw := r.URL.Query().Get("serviceType"); raw != "" {
		service, err = domain.ParseServiceType(raw)
		if err != nil {
			h.logger.Warn("GET /availability - unknown service %q", raw)
			handlers.RespondBadRequest(w, msgInvalidService)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		Date:    date,
		Service: service,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)
		default:
			h.logger.Error("GET /availability - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
