package update_schedule_config

import (
	"context"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

type ScheduleService interface {
	GetConfig(ctx context.Context) (*domain.ScheduleConfig, error)
	UpdateConfig(ctx context.Context, cfg *domain.ScheduleConfig, occasional []*domain.OccasionalWorkday, vacations []*domain.VacationPeriod) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
