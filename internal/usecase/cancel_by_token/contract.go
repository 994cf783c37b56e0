package cancel_by_token

import (
	"context"
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

// AppointmentRepo resolves tokens and applies the cancellation.
type AppointmentRepo interface {
	GetByCancellationToken(ctx context.Context, token string) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// CalendarSync removes the mirrored event of the cancelled appointment.
type CalendarSync interface {
	PushDelete(ctx context.Context, appt *domain.Appointment) error
}

// Notifier tells the administrator about the cancellation.
type Notifier interface {
	AppointmentCancelledByPatient(appt *domain.Appointment)
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
