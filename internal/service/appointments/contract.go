package appointments

import (
	"context"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

// Logger is the logging surface the service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AppointmentRepo is the storage slice used by admin operations.
type AppointmentRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Delete(ctx context.Context, id int64) error
}

// CalendarSync removes mirrored events when appointments leave the agenda.
type CalendarSync interface {
	PushDelete(ctx context.Context, appt *domain.Appointment) error
}

// Notifier informs the patient of administrative cancellations.
type Notifier interface {
	AppointmentCancelledByAdmin(appt *domain.Appointment)
}
