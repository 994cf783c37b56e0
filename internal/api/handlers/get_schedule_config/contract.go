package get_schedule_config

import (
	"context"

	scheduleService "github.com/matutevip/ginecoschedule-sub001/internal/service/schedule"
)

type ScheduleService interface {
	GetFullConfig(ctx context.Context) (*scheduleService.FullConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
