// Package appointments implements the administrator-facing operations on
// the agenda: reads, status changes, cancellations and hard deletes.
package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	storage "github.com/matutevip/ginecoschedule-sub001/internal/infra/storage/appointment"
)

// Service wires the appointment store to the calendar mirror and the
// notifier for administrative operations.
type Service struct {
	repo     AppointmentRepo
	calendar CalendarSync
	notifier Notifier
	loc      *time.Location
	log      Logger
}

func NewService(repo AppointmentRepo, cal CalendarSync, notifier Notifier, loc *time.Location, log Logger) *Service {
	return &Service{
		repo:     repo,
		calendar: cal,
		notifier: notifier,
		loc:      loc,
		log:      log,
	}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrAppointmentNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrAppointmentNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID: %v", ErrInternal, err)
	}
	return appt, nil
}

func (s *Service) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	appts, err := s.repo.GetWithFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: List: %v", ErrInternal, err)
	}
	return appts, nil
}

// DayAgenda returns the active appointments of one calendar day, ordered by
// start time. Used by the admin panel and the daily digest.
func (s *Service) DayAgenda(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	day := domain.DayOf(date.In(s.loc))
	return s.List(ctx, domain.AppointmentsFilter{
		StartDate: &day,
		EndDate:   &day,
	})
}

// UpdateStatus moves an appointment to a new status. Terminal records stay
// terminal; a transition into cancelled_by_professional also removes the
// mirrored event and mails the patient.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error) {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.IsTerminal() && appt.Status != status {
		return nil, fmt.Errorf("%w: id %d is %s", ErrAlreadyTerminal, id, appt.Status)
	}
	if appt.Status == status {
		return appt, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus: %v", ErrInternal, err)
	}
	appt.Status = status

	if status == domain.StatusCancelledByProfessional {
		s.afterAdminCancel(ctx, appt)
	}
	return appt, nil
}

// Cancel is the administrative cancellation: the slot is vacated but the
// record is kept.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.UpdateStatus(ctx, id, domain.StatusCancelledByProfessional)
}

// Delete removes the record entirely, mirrored event included. Reserved for
// data corrections; cancellations go through Cancel.
func (s *Service) Delete(ctx context.Context, id int64) error {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.calendar.PushDelete(ctx, appt); err != nil {
		s.log.Warn("appointments: Delete - event removal for %d failed: %v", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrAppointmentNotFound) {
			return fmt.Errorf("%w: id %d", ErrAppointmentNotFound, id)
		}
		return fmt.Errorf("%w: Delete: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) afterAdminCancel(ctx context.Context, appt *domain.Appointment) {
	if err := s.calendar.PushDelete(ctx, appt); err != nil {
		s.log.Warn("appointments: event removal for %d failed: %v", appt.ID, err)
	}
	if !appt.IsExternallySourced() {
		s.notifier.AppointmentCancelledByAdmin(appt)
	}
}
