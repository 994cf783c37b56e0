package create_appointment

import (
	"fmt"
	"strings"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

func validateRequest(req *Request) error {
	if strings.TrimSpace(req.PatientName) == "" {
		return fmt.Errorf("%w: patient name is required", ErrInvalidInput)
	}

	if req.CreatedBy != domain.CreatedByCalendar {
		if req.Email == "" || !strings.Contains(req.Email, "@") {
			return fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if _, err := domain.ParseServiceType(string(req.Service)); err != nil {
		return fmt.Errorf("%w: unknown service type %q", ErrInvalidInput, req.Service)
	}

	if req.CreatedBy != "" {
		switch req.CreatedBy {
		case domain.CreatedByPatient, domain.CreatedByAdmin, domain.CreatedByCalendar:
		default:
			return fmt.Errorf("%w: unknown createdBy %q", ErrInvalidInput, req.CreatedBy)
		}
	}

	return nil
}
