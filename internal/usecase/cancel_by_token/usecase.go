// Package cancel_by_token implements patient self-service cancellation.
// Validate answers whether a token can still be used; Execute performs the
// cancellation. Both apply the same checks so a token that validates also
// executes, barring a race.
package cancel_by_token

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	storage "github.com/matutevip/ginecoschedule-sub001/internal/infra/storage/appointment"
)

type UseCase struct {
	appointmentRepo AppointmentRepo
	calendarSync    CalendarSync
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

func NewUseCase(
	appointmentRepo AppointmentRepo,
	calendarSync CalendarSync,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		calendarSync:    calendarSync,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider replaces the clock. Tests only.
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Validate checks a token without mutating anything. Used by the
// cancellation page to show the appointment before asking for confirmation.
func (uc *UseCase) Validate(ctx context.Context, token string) (*Response, error) {
	appt, err := uc.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return toResponse(appt), nil
}

// Execute cancels the appointment the token points at. The record is marked
// cancelled_by_patient and kept; the mirrored event is removed.
func (uc *UseCase) Execute(ctx context.Context, token string) (*Response, error) {
	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := uc.resolve(txCtx, token)
		if err != nil {
			return err
		}

		if err := uc.appointmentRepo.UpdateStatus(txCtx, appt.ID, domain.StatusCancelledByPatient); err != nil {
			uc.logger.Error("CancelByToken: failed to cancel id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to cancel: %v", ErrInternal, err)
		}
		appt.Status = domain.StatusCancelledByPatient
		result = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelByToken: appointment id=%d cancelled by patient", result.ID)

	if err := uc.calendarSync.PushDelete(ctx, result); err != nil {
		uc.logger.Warn("CancelByToken: event removal for id=%d failed: %v", result.ID, err)
	}
	uc.notifier.AppointmentCancelledByPatient(result)

	return toResponse(result), nil
}

// resolve loads the appointment behind a token and applies the shared
// checks: existence, expiry, liveness.
func (uc *UseCase) resolve(ctx context.Context, token string) (*domain.Appointment, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	appt, err := uc.appointmentRepo.GetByCancellationToken(ctx, token)
	if errors.Is(err, storage.ErrAppointmentNotFound) {
		uc.logger.Warn("CancelByToken: unknown token")
		return nil, ErrTokenNotFound
	}
	if err != nil {
		uc.logger.Error("CancelByToken: failed to resolve token: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve token: %v", ErrInternal, err)
	}

	if appt.IsTerminal() {
		return nil, fmt.Errorf("%w: id %d is %s", ErrAlreadyTerminal, appt.ID, appt.Status)
	}

	if appt.TokenExpiresAt == nil || !uc.timeProvider.Now().Before(*appt.TokenExpiresAt) {
		uc.logger.Warn("CancelByToken: token for id=%d expired", appt.ID)
		return nil, ErrTokenExpired
	}

	return appt, nil
}

func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:          appt.ID,
		PatientName: appt.PatientName,
		Date:        appt.Date,
		StartTime:   appt.StartTime,
		Service:     appt.ServiceType,
		Status:      appt.Status,
	}
}
