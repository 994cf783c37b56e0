package calendarsync

import (
	"context"
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	"github.com/matutevip/ginecoschedule-sub001/internal/integrations/calendar"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

// Logger is the logging surface the service needs.
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CalendarClient abstracts the external calendar API.
type CalendarClient interface {
	Enabled() bool
	CreateEvent(ctx context.Context, event *calendar.Event) (string, error)
	UpdateEvent(ctx context.Context, eventID string, event *calendar.Event) error
	DeleteEvent(ctx context.Context, eventID string) error
	ListEvents(ctx context.Context, from, to time.Time) ([]*calendar.Event, error)
}

// AppointmentRepo is the slice of the appointment storage the sweep needs.
type AppointmentRepo interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateTime(ctx context.Context, id int64, date time.Time, start types.TimeString, durationMinutes int) error
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	SetExternalEventID(ctx context.Context, id int64, eventID *string) error
}
