package update_schedule_config

import (
	"fmt"
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

// UpdateConfigRequest is the PATCH body. Absent fields keep their current
// value; occasional workdays and vacations replace their whole set when
// present.
type UpdateConfigRequest struct {
	Workdays            *[]string                 `json:"workdays,omitempty"`
	OpenTime            *string                   `json:"openTime,omitempty"`
	CloseTime           *string                   `json:"closeTime,omitempty"`
	ExtendedPapDuration *bool                     `json:"extendedPapDuration,omitempty"`
	OccasionalWorkdays  *[]OccasionalWorkdayInput `json:"occasionalWorkdays,omitempty"`
	VacationPeriods     *[]VacationPeriodInput    `json:"vacationPeriods,omitempty"`
}

// OccasionalWorkdayInput is one extra opened date.
type OccasionalWorkdayInput struct {
	Date      string  `json:"date"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
}

// VacationPeriodInput is one closed date range.
type VacationPeriodInput struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason,omitempty"`
}

// apply merges the request into the current configuration and materializes
// the replacement sets. Nil return slices mean "leave unchanged".
func (r *UpdateConfigRequest) apply(cfg *domain.ScheduleConfig) ([]*domain.OccasionalWorkday, []*domain.VacationPeriod, error) {
	if r.Workdays != nil {
		days := make([]domain.Weekday, 0, len(*r.Workdays))
		for _, raw := range *r.Workdays {
			day, err := domain.ParseWeekday(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("unknown workday %q", raw)
			}
			days = append(days, day)
		}
		cfg.Workdays = days
	}
	if r.OpenTime != nil {
		open, err := types.NewTimeStringFromString(*r.OpenTime)
		if err != nil {
			return nil, nil, err
		}
		cfg.OpenTime = open
	}
	if r.CloseTime != nil {
		close, err := types.NewTimeStringFromString(*r.CloseTime)
		if err != nil {
			return nil, nil, err
		}
		cfg.CloseTime = close
	}
	if r.ExtendedPapDuration != nil {
		cfg.ExtendedPapDuration = *r.ExtendedPapDuration
	}

	var occasional []*domain.OccasionalWorkday
	if r.OccasionalWorkdays != nil {
		occasional = make([]*domain.OccasionalWorkday, 0, len(*r.OccasionalWorkdays))
		for _, in := range *r.OccasionalWorkdays {
			date, err := time.Parse(domain.DateFormat, in.Date)
			if err != nil {
				return nil, nil, err
			}
			day := &domain.OccasionalWorkday{Date: date}
			if in.OpenTime != nil {
				open, err := types.NewTimeStringFromString(*in.OpenTime)
				if err != nil {
					return nil, nil, err
				}
				day.OpenTime = &open
			}
			if in.CloseTime != nil {
				close, err := types.NewTimeStringFromString(*in.CloseTime)
				if err != nil {
					return nil, nil, err
				}
				day.CloseTime = &close
			}
			occasional = append(occasional, day)
		}
	}

	var vacations []*domain.VacationPeriod
	if r.VacationPeriods != nil {
		vacations = make([]*domain.VacationPeriod, 0, len(*r.VacationPeriods))
		for _, in := range *r.VacationPeriods {
			start, err := time.Parse(domain.DateFormat, in.StartDate)
			if err != nil {
				return nil, nil, err
			}
			end, err := time.Parse(domain.DateFormat, in.EndDate)
			if err != nil {
				return nil, nil, err
			}
			vacations = append(vacations, &domain.VacationPeriod{
				StartDate: start,
				EndDate:   end,
				Reason:    in.Reason,
			})
		}
	}

	return occasional, vacations, nil
}
