package get_blocked_days

import (
	"context"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

type ScheduleService interface {
	ListBlockedDays(ctx context.Context) ([]*domain.BlockedDay, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
