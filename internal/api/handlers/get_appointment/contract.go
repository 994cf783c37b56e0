package get_appointment

import (
	"context"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

type AppointmentsService interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
