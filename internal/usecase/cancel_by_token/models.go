package cancel_by_token

import (
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

// Response describes the appointment the token points at, before or after
// cancellation. Contact details stay private; the patient already knows
// their own.
type Response struct {
	ID          int64
	PatientName string
	Date        time.Time
	StartTime   types.TimeString
	Service     domain.ServiceType
	Status      domain.AppointmentStatus
}
