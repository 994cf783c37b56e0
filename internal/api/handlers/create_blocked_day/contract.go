package create_blocked_day

import (
	"context"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

type ScheduleService interface {
	CreateBlockedDay(ctx context.Context, day *domain.BlockedDay) (*domain.BlockedDay, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
