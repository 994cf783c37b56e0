package update_appointment

import (
	"context"
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

// AppointmentRepo reads and mutates the appointment under change.
type AppointmentRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateTime(ctx context.Context, id int64, date time.Time, start types.TimeString, durationMinutes int) error
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	SetTokenExpiry(ctx context.Context, id int64, expiresAt *time.Time) error
}

// ScheduleService classifies calendar dates.
type ScheduleService interface {
	ResolveDay(ctx context.Context, date time.Time) (domain.DayType, *domain.ScheduleConfig, error)
}

// CalendarSync keeps the mirrored event in step with the change.
type CalendarSync interface {
	PushUpdate(ctx context.Context, appt *domain.Appointment) error
	PushDelete(ctx context.Context, appt *domain.Appointment) error
}

// Notifier mails the patient about the change.
type Notifier interface {
	AppointmentRescheduled(appt *domain.Appointment)
	AppointmentCancelledByAdmin(appt *domain.Appointment)
}

// TransactionManager runs a function inside a serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging surface of the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
