// Package update_appointment applies administrative changes to an existing
// appointment: reschedule, status transition or both in one request. Time
// changes re-run the availability rules with the appointment excluded from
// its own conflict check.
package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	storage "github.com/matutevip/ginecoschedule-sub001/internal/infra/storage/appointment"
)

type UseCase struct {
	appointmentRepo AppointmentRepo
	scheduleService ScheduleService
	calendarSync    CalendarSync
	notifier        Notifier
	txManager       TransactionManager
	loc             *time.Location
	logger          Logger
}

func NewUseCase(
	appointmentRepo AppointmentRepo,
	scheduleService ScheduleService,
	calendarSync CalendarSync,
	notifier Notifier,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleService: scheduleService,
		calendarSync:    calendarSync,
		notifier:        notifier,
		txManager:       txManager,
		loc:             loc,
		logger:          logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	var (
		result      *domain.Appointment
		rescheduled bool
		cancelled   bool
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.ID)
		if errors.Is(err, storage.ErrAppointmentNotFound) {
			return fmt.Errorf("%w: id %d", ErrAppointmentNotFound, req.ID)
		}
		if err != nil {
			uc.logger.Error("UpdateAppointment: failed to load id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to load appointment: %v", ErrInternal, err)
		}

		if appt.IsTerminal() {
			return fmt.Errorf("%w: id %d is %s", ErrAlreadyTerminal, req.ID, appt.Status)
		}

		if req.NewDate != nil || req.NewStart != nil {
			if err := uc.reschedule(txCtx, appt, req); err != nil {
				return err
			}
			rescheduled = true
		}

		if req.NewStatus != nil && *req.NewStatus != appt.Status {
			if err := uc.appointmentRepo.UpdateStatus(txCtx, appt.ID, *req.NewStatus); err != nil {
				uc.logger.Error("UpdateAppointment: failed to update status: %v", err)
				return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
			}
			appt.Status = *req.NewStatus
			cancelled = appt.Status == domain.StatusCancelledByProfessional
		}

		result = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: id=%d rescheduled=%t status=%s",
		result.ID, rescheduled, result.Status)

	switch {
	case cancelled:
		if err := uc.calendarSync.PushDelete(ctx, result); err != nil {
			uc.logger.Warn("UpdateAppointment: event removal for id=%d failed: %v", result.ID, err)
		}
		if !result.IsExternallySourced() {
			uc.notifier.AppointmentCancelledByAdmin(result)
		}
	case rescheduled:
		if err := uc.calendarSync.PushUpdate(ctx, result); err != nil {
			uc.logger.Warn("UpdateAppointment: calendar push for id=%d failed: %v", result.ID, err)
		}
		if !result.IsExternallySourced() {
			uc.notifier.AppointmentRescheduled(result)
		}
	}

	return &Response{
		ID:              result.ID,
		PatientName:     result.PatientName,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Service:         result.ServiceType,
		Status:          result.Status,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// reschedule moves the appointment in place, re-validating the target slot
// unless the record is calendar-sourced.
func (uc *UseCase) reschedule(ctx context.Context, appt *domain.Appointment, req *Request) error {
	date := appt.Date
	if req.NewDate != nil {
		date = domain.DayOf(req.NewDate.In(uc.loc))
	}
	start := appt.StartTime
	if req.NewStart != nil {
		start = *req.NewStart
	}

	day, cfg, err := uc.scheduleService.ResolveDay(ctx, date)
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to resolve day: %v", err)
		return fmt.Errorf("%w: failed to resolve day: %v", ErrInternal, err)
	}
	duration := appt.ServiceType.Duration(cfg.ExtendedPapDuration)

	if !appt.IsExternallySourced() {
		existing, err := uc.appointmentRepo.GetWithFilter(ctx, domain.AppointmentsFilter{
			StartDate: &date,
			EndDate:   &date,
		})
		if err != nil {
			uc.logger.Error("UpdateAppointment: failed to load appointments: %v", err)
			return fmt.Errorf("%w: failed to load appointments: %v", ErrInternal, err)
		}

		reason, ok := domain.CheckSlot(domain.SlotRequest{
			Start:       start,
			Service:     appt.ServiceType,
			Day:         day,
			Existing:    existing,
			ExcludeID:   appt.ID,
			ExtendedPap: cfg.ExtendedPapDuration,
		})
		if !ok {
			uc.logger.Warn("UpdateAppointment: slot %s %s rejected: %s",
				date.Format(domain.DateFormat), start, reason)
			return &SlotConflictError{Reason: reason}
		}
	}

	if err := uc.appointmentRepo.UpdateTime(ctx, appt.ID, date, start, duration); err != nil {
		uc.logger.Error("UpdateAppointment: failed to update time: %v", err)
		return fmt.Errorf("%w: failed to update time: %v", ErrInternal, err)
	}
	appt.Date = date
	appt.StartTime = start
	appt.DurationMinutes = duration

	// The token deadline tracks the appointment it cancels.
	if appt.CancellationToken != nil {
		instant, ierr := appt.StartInstant(uc.loc)
		if ierr != nil {
			return fmt.Errorf("%w: invalid start instant: %v", ErrInternal, ierr)
		}
		expiry := domain.CancellationTokenExpiry(instant)
		if err := uc.appointmentRepo.SetTokenExpiry(ctx, appt.ID, &expiry); err != nil {
			uc.logger.Error("UpdateAppointment: failed to move token expiry: %v", err)
			return fmt.Errorf("%w: failed to move token expiry: %v", ErrInternal, err)
		}
		appt.TokenExpiresAt = &expiry
	}

	return nil
}

func validateRequest(req *Request) error {
	if req.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}
	if req.NewDate == nil && req.NewStart == nil && req.NewStatus == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.NewStart != nil {
		if err := req.NewStart.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}
	if req.NewStatus != nil {
		if _, ok := domain.ParseAppointmentStatus(string(*req.NewStatus)); !ok {
			return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.NewStatus)
		}
	}
	return nil
}
