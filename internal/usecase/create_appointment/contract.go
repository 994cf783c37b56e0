package create_appointment

import (
	"context"
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

// AppointmentRepo persists appointments and reads the day under lock.
type AppointmentRepo interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// ScheduleService classifies calendar dates.
type ScheduleService interface {
	ResolveDay(ctx context.Context, date time.Time) (domain.DayType, *domain.ScheduleConfig, error)
}

// CalendarSync mirrors the new appointment into the external calendar.
type CalendarSync interface {
	PushCreate(ctx context.Context, appt *domain.Appointment) error
}

// Notifier sends the booking confirmation emails.
type Notifier interface {
	AppointmentBooked(appt *domain.Appointment, token string)
}

// TransactionManager runs a function inside a serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider abstracts the current time for tests.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface of the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
