package get_schedule_config

import (
	"net/http"

	"github.com/matutevip/ginecoschedule-sub001/internal/api/handlers"
	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	scheduleService "github.com/matutevip/ginecoschedule-sub001/internal/service/schedule"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// OccasionalWorkdayResponse is one extra opened date.
type OccasionalWorkdayResponse struct {
	Date      string `json:"date"`
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
}

// VacationPeriodResponse is one closed date range.
type VacationPeriodResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason,omitempty"`
}

// ConfigResponse is the full schedule configuration.
type ConfigResponse struct {
	Workdays            []string                    `json:"workdays"`
	OpenTime            string                      `json:"openTime"`
	CloseTime           string                      `json:"closeTime"`
	ExtendedPapDuration bool                        `json:"extendedPapDuration"`
	OccasionalWorkdays  []OccasionalWorkdayResponse `json:"occasionalWorkdays"`
	VacationPeriods     []VacationPeriodResponse    `json:"vacationPeriods"`
}

// Handle GET /api/v1/schedule-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	full, err := h.service.GetFullConfig(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule-config - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromFullConfig(full))
}

func fromFullConfig(full *scheduleService.FullConfig) *ConfigResponse {
	resp := &ConfigResponse{
		Workdays:            make([]string, 0, len(full.Config.Workdays)),
		OpenTime:            full.Config.OpenTime.String(),
		CloseTime:           full.Config.CloseTime.String(),
		ExtendedPapDuration: full.Config.ExtendedPapDuration,
		OccasionalWorkdays:  make([]OccasionalWorkdayResponse, 0, len(full.OccasionalWorkdays)),
		VacationPeriods:     make([]VacationPeriodResponse, 0, len(full.VacationPeriods)),
	}

	for _, day := range full.Config.Workdays {
		resp.Workdays = append(resp.Workdays, day.String())
	}
	for _, day := range full.OccasionalWorkdays {
		out := OccasionalWorkdayResponse{Date: day.Date.Format(domain.DateFormat)}
		if day.OpenTime != nil && day.CloseTime != nil {
			out.OpenTime = day.OpenTime.String()
			out.CloseTime = day.CloseTime.String()
		}
		resp.OccasionalWorkdays = append(resp.OccasionalWorkdays, out)
	}
	for _, v := range full.VacationPeriods {
		resp.VacationPeriods = append(resp.VacationPeriods, VacationPeriodResponse{
			StartDate: v.StartDate.Format(domain.DateFormat),
			EndDate:   v.EndDate.Format(domain.DateFormat),
			Reason:    v.Reason,
		})
	}
	return resp
}
