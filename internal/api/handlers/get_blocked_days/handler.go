package get_blocked_days

import (
	"net/http"
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/api/handlers"
	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// BlockedDayResponse is one explicitly closed date.
type BlockedDayResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// ListResponse wraps the listing.
type ListResponse struct {
	BlockedDays []BlockedDayResponse `json:"blockedDays"`
}

// Handle GET /api/v1/blocked-days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	days, err := h.service.ListBlockedDays(r.Context())
	if err != nil {
		h.logger.Error("GET /blocked-days - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := ListResponse{BlockedDays: make([]BlockedDayResponse, 0, len(days))}
	for _, day := range days {
		resp.BlockedDays = append(resp.BlockedDays, BlockedDayResponse{
			ID:        day.ID,
			Date:      day.Date.Format(domain.DateFormat),
			Reason:    day.Reason,
			CreatedAt: day.CreatedAt.Format(time.RFC3339),
		})
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}
