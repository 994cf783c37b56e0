package schedule

import (
	"context"
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

// Logger is the logging surface the service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ScheduleRepo is the storage behind the working-schedule configuration.
type ScheduleRepo interface {
	GetConfig(ctx context.Context) (*domain.ScheduleConfig, error)
	UpsertConfig(ctx context.Context, cfg *domain.ScheduleConfig) error

	BlockedDayOnDate(ctx context.Context, date time.Time) (*domain.BlockedDay, error)
	ListBlockedDays(ctx context.Context) ([]*domain.BlockedDay, error)
	CreateBlockedDay(ctx context.Context, day *domain.BlockedDay) (*domain.BlockedDay, error)
	DeleteBlockedDay(ctx context.Context, id int64) error

	OccasionalWorkdayOnDate(ctx context.Context, date time.Time) (*domain.OccasionalWorkday, error)
	ListOccasionalWorkdays(ctx context.Context) ([]*domain.OccasionalWorkday, error)
	ReplaceOccasionalWorkdays(ctx context.Context, days []*domain.OccasionalWorkday) error

	VacationCovering(ctx context.Context, date time.Time) (*domain.VacationPeriod, error)
	ListVacationPeriods(ctx context.Context) ([]*domain.VacationPeriod, error)
	ReplaceVacationPeriods(ctx context.Context, periods []*domain.VacationPeriod) error
}

// TransactionManager runs a function inside a serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}
