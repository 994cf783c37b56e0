package get_availability

import (
	"context"
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

// ScheduleService classifies calendar dates.
type ScheduleService interface {
	ResolveDay(ctx context.Context, date time.Time) (domain.DayType, *domain.ScheduleConfig, error)
}

// AppointmentRepo reads the appointments of the requested day.
type AppointmentRepo interface {
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// Logger is the logging surface of the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
