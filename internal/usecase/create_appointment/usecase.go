// Package create_appointment books one slot: availability check and insert
// run inside a serializable transaction so racing requests for the same
// slot cannot both land.
package create_appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

type UseCase struct {
	appointmentRepo AppointmentRepo
	scheduleService ScheduleService
	calendarSync    CalendarSync
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
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
		timeProvider:    &RealTimeProvider{},
		loc:             loc,
		logger:          logger,
	}
}

// WithTimeProvider replaces the clock. Tests only.
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: %s %s service=%s source=%s",
		req.Date.Format(domain.DateFormat), req.StartTime, req.Service, req.CreatedBy)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}
	if req.CreatedBy == "" {
		req.CreatedBy = domain.CreatedByPatient
	}

	now := uc.timeProvider.Now().In(uc.loc)
	date := domain.DayOf(req.Date.In(uc.loc))

	external := req.CreatedBy == domain.CreatedByCalendar
	if !external && date.Before(domain.DayOf(now)) {
		uc.logger.Warn("CreateAppointment: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	appt := &domain.Appointment{
		PatientName: req.PatientName,
		Email:       req.Email,
		Phone:       req.Phone,
		Date:        date,
		StartTime:   req.StartTime,
		ServiceType: req.Service,
		Notes:       req.Notes,
		CreatedBy:   req.CreatedBy,
	}

	var token string
	switch req.CreatedBy {
	case domain.CreatedByPatient:
		appt.Status = domain.StatusPending
	default:
		appt.Status = domain.StatusConfirmed
	}

	var result *domain.Appointment
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		day, cfg, err := uc.scheduleService.ResolveDay(txCtx, date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to resolve day: %v", err)
			return fmt.Errorf("%w: failed to resolve day: %v", ErrInternal, err)
		}
		appt.DurationMinutes = req.Service.Duration(cfg.ExtendedPapDuration)

		// Single-date read inside the transaction takes row locks on the
		// day's appointments.
		existing, err := uc.appointmentRepo.GetWithFilter(txCtx, domain.AppointmentsFilter{
			StartDate: &date,
			EndDate:   &date,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to load appointments: %v", err)
			return fmt.Errorf("%w: failed to load appointments: %v", ErrInternal, err)
		}

		if !external {
			reason, ok := domain.CheckSlot(domain.SlotRequest{
				Start:       req.StartTime,
				Service:     req.Service,
				Day:         day,
				Existing:    existing,
				ExtendedPap: cfg.ExtendedPapDuration,
			})
			if !ok {
				uc.logger.Warn("CreateAppointment: slot %s rejected: %s", req.StartTime, reason)
				return &SlotConflictError{Reason: reason}
			}

			start, serr := appt.StartInstant(uc.loc)
			if serr != nil {
				return fmt.Errorf("%w: invalid start instant: %v", ErrInternal, serr)
			}
			token = uuid.NewString()
			expiry := domain.CancellationTokenExpiry(start)
			appt.CancellationToken = &token
			appt.TokenExpiresAt = &expiry
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created id=%d", result.ID)

	// The booking stands even when the mirror or the mail fails.
	if !external {
		if err := uc.calendarSync.PushCreate(ctx, result); err != nil {
			uc.logger.Warn("CreateAppointment: calendar push for id=%d failed: %v", result.ID, err)
		}
		uc.notifier.AppointmentBooked(result, token)
	}

	return toResponse(result, token), nil
}

func toResponse(appt *domain.Appointment, token string) *Response {
	return &Response{
		ID:                appt.ID,
		PatientName:       appt.PatientName,
		Email:             appt.Email,
		Phone:             appt.Phone,
		Date:              appt.Date,
		StartTime:         appt.StartTime,
		DurationMinutes:   appt.DurationMinutes,
		Service:           appt.ServiceType,
		Status:            appt.Status,
		Notes:             appt.Notes,
		CancellationToken: token,
		TokenExpiresAt:    appt.TokenExpiresAt,
		CreatedAt:         appt.CreatedAt,
	}
}
