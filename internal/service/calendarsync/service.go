// Package calendarsync keeps the local agenda and the external calendar in
// agreement. Outbound pushes mirror local appointments into the calendar;
// the periodic sweep walks the shared window and folds external edits back
// into the local agenda.
package calendarsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	"github.com/matutevip/ginecoschedule-sub001/internal/integrations/calendar"
	"github.com/matutevip/ginecoschedule-sub001/pkg/metrics"
	"github.com/matutevip/ginecoschedule-sub001/pkg/ptr"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

const (
	mutationCancelled = "cancelled_missing_event"
	mutationMoved     = "moved_with_event"
	mutationAdopted   = "event_adopted"
	mutationImported  = "event_imported"
)

// Service mirrors appointments into the external calendar and reconciles
// divergence in both directions.
type Service struct {
	client     CalendarClient
	repo       AppointmentRepo
	loc        *time.Location
	windowDays int
	metrics    *metrics.Metrics
	log        Logger
}

func NewService(client CalendarClient, repo AppointmentRepo, loc *time.Location, windowDays int, m *metrics.Metrics, log Logger) *Service {
	return &Service{
		client:     client,
		repo:       repo,
		loc:        loc,
		windowDays: windowDays,
		metrics:    m,
		log:        log,
	}
}

// buildEvent projects an appointment into its calendar representation.
func (s *Service) buildEvent(appt *domain.Appointment) (*calendar.Event, error) {
	start, err := appt.StartInstant(s.loc)
	if err != nil {
		return nil, fmt.Errorf("service.calendarsync: buildEvent - invalid start: %w", err)
	}

	var desc strings.Builder
	fmt.Fprintf(&desc, "Tel: %s\nEmail: %s", appt.Phone, appt.Email)
	if appt.Notes != "" {
		fmt.Fprintf(&desc, "\nNotas: %s", appt.Notes)
	}

	return &calendar.Event{
		Title:       fmt.Sprintf("%s - %s", appt.PatientName, appt.ServiceType.Label()),
		Description: desc.String(),
		Start:       start,
		End:         start.Add(time.Duration(appt.DurationMinutes) * time.Minute),
	}, nil
}

// PushCreate mirrors a freshly booked appointment into the calendar and
// records the returned event ID. Best effort: the booking stands even when
// the push fails.
func (s *Service) PushCreate(ctx context.Context, appt *domain.Appointment) error {
	if !s.client.Enabled() {
		return ErrCalendarDisabled
	}

	event, err := s.buildEvent(appt)
	if err != nil {
		s.metrics.CalendarPushTotal.WithLabelValues("create", "error").Inc()
		return err
	}

	eventID, err := s.client.CreateEvent(ctx, event)
	if err != nil {
		s.metrics.CalendarPushTotal.WithLabelValues("create", "error").Inc()
		return fmt.Errorf("service.calendarsync: PushCreate - create event: %w", err)
	}

	if err := s.repo.SetExternalEventID(ctx, appt.ID, &eventID); err != nil {
		s.metrics.CalendarPushTotal.WithLabelValues("create", "error").Inc()
		return fmt.Errorf("service.calendarsync: PushCreate - store event id: %w", err)
	}

	appt.ExternalEventID = &eventID
	s.metrics.CalendarPushTotal.WithLabelValues("create", "ok").Inc()
	return nil
}

// PushUpdate refreshes the mirrored event after a local change. An
// appointment without an event falls back to a create; a vanished event is
// recreated under a new ID.
func (s *Service) PushUpdate(ctx context.Context, appt *domain.Appointment) error {
	if !s.client.Enabled() {
		return ErrCalendarDisabled
	}
	if appt.ExternalEventID == nil {
		return s.PushCreate(ctx, appt)
	}

	event, err := s.buildEvent(appt)
	if err != nil {
		s.metrics.CalendarPushTotal.WithLabelValues("update", "error").Inc()
		return err
	}

	err = s.client.UpdateEvent(ctx, *appt.ExternalEventID, event)
	if errors.Is(err, calendar.ErrEventNotFound) {
		appt.ExternalEventID = nil
		return s.PushCreate(ctx, appt)
	}
	if err != nil {
		s.metrics.CalendarPushTotal.WithLabelValues("update", "error").Inc()
		return fmt.Errorf("service.calendarsync: PushUpdate - update event: %w", err)
	}

	s.metrics.CalendarPushTotal.WithLabelValues("update", "ok").Inc()
	return nil
}

// PushDelete removes the mirrored event and forgets its ID. An already
// missing event counts as success.
func (s *Service) PushDelete(ctx context.Context, appt *domain.Appointment) error {
	if !s.client.Enabled() || appt.ExternalEventID == nil {
		return nil
	}

	err := s.client.DeleteEvent(ctx, *appt.ExternalEventID)
	if err != nil && !errors.Is(err, calendar.ErrEventNotFound) {
		s.metrics.CalendarPushTotal.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("service.calendarsync: PushDelete - delete event: %w", err)
	}

	if err := s.repo.SetExternalEventID(ctx, appt.ID, nil); err != nil {
		return fmt.Errorf("service.calendarsync: PushDelete - clear event id: %w", err)
	}

	appt.ExternalEventID = nil
	s.metrics.CalendarPushTotal.WithLabelValues("delete", "ok").Inc()
	return nil
}

// Sweep reconciles the window [today, today+windowDays]. The local agenda
// loses only on deletion and movement of events it already mirrors; unknown
// events are adopted or imported, never silently dropped.
func (s *Service) Sweep(ctx context.Context, now time.Time) error {
	if !s.client.Enabled() {
		return ErrCalendarDisabled
	}

	from := domain.DayOf(now.In(s.loc))
	to := from.AddDate(0, 0, s.windowDays)

	events, err := s.client.ListEvents(ctx, from, to)
	if err != nil {
		return fmt.Errorf("%w: list events: %v", ErrSweepFailed, err)
	}

	// Duplicate IDs within one listing are processed once.
	eventsByID := make(map[string]*calendar.Event, len(events))
	for _, ev := range events {
		if ev.ID == "" {
			continue
		}
		if _, seen := eventsByID[ev.ID]; !seen {
			eventsByID[ev.ID] = ev
		}
	}

	appts, err := s.repo.GetWithFilter(ctx, domain.AppointmentsFilter{
		StartDate: &from,
		EndDate:   &to,
	})
	if err != nil {
		return fmt.Errorf("%w: list appointments: %v", ErrSweepFailed, err)
	}

	matched := make(map[string]bool, len(eventsByID))
	var mutations int

	for _, appt := range appts {
		if appt.ExternalEventID == nil {
			continue
		}
		eventID := *appt.ExternalEventID

		ev, ok := eventsByID[eventID]
		if !ok {
			// The event was removed on the calendar side. The local record
			// is cancelled, never deleted.
			if err := s.repo.UpdateStatus(ctx, appt.ID, domain.StatusCancelledByProfessional); err != nil {
				s.log.Error("calendarsync: sweep - cancel appointment %d: %v", appt.ID, err)
				continue
			}
			s.log.Info("calendarsync: sweep - appointment %d cancelled, event %s gone", appt.ID, eventID)
			s.metrics.ReconcileMutations.WithLabelValues(mutationCancelled).Inc()
			mutations++
			continue
		}
		matched[eventID] = true

		localStart, err := appt.StartInstant(s.loc)
		if err != nil {
			s.log.Error("calendarsync: sweep - appointment %d has invalid start: %v", appt.ID, err)
			continue
		}
		if ev.Start.Equal(localStart) {
			continue
		}

		// The event was moved on the calendar side. The calendar wins for
		// every mirrored record during the sweep; the local time follows
		// the event. The write goes straight to storage, no availability
		// check. The local duration is kept: only imports derive a
		// duration from the event span.
		evStart := ev.Start.In(s.loc)
		if err := s.repo.UpdateTime(ctx, appt.ID, domain.DayOf(evStart), types.NewTimeString(evStart), appt.DurationMinutes); err != nil {
			s.log.Error("calendarsync: sweep - move appointment %d: %v", appt.ID, err)
			continue
		}
		s.log.Info("calendarsync: sweep - appointment %d moved to %s", appt.ID, evStart.Format(time.RFC3339))
		s.metrics.ReconcileMutations.WithLabelValues(mutationMoved).Inc()
		mutations++
	}

	// Events with no mirrored counterpart: adopt a same-time loose
	// appointment when one exists, otherwise import the event.
	for id, ev := range eventsByID {
		if matched[id] {
			continue
		}

		if appt := s.findLooseMatch(appts, ev); appt != nil {
			if err := s.repo.SetExternalEventID(ctx, appt.ID, &id); err != nil {
				s.log.Error("calendarsync: sweep - adopt event %s: %v", id, err)
				continue
			}
			appt.ExternalEventID = &id
			s.log.Info("calendarsync: sweep - event %s adopted by appointment %d", id, appt.ID)
			s.metrics.ReconcileMutations.WithLabelValues(mutationAdopted).Inc()
			mutations++
			continue
		}

		if err := s.importEvent(ctx, ev); err != nil {
			s.log.Error("calendarsync: sweep - import event %s: %v", id, err)
			continue
		}
		s.log.Info("calendarsync: sweep - event %s imported", id)
		s.metrics.ReconcileMutations.WithLabelValues(mutationImported).Inc()
		mutations++
	}

	s.metrics.ReconcileSweeps.Inc()
	s.log.Info("calendarsync: sweep done, %d events, %d appointments, %d mutations",
		len(eventsByID), len(appts), mutations)
	return nil
}

// findLooseMatch locates an active appointment without an event that starts
// exactly when the event does.
func (s *Service) findLooseMatch(appts []*domain.Appointment, ev *calendar.Event) *domain.Appointment {
	for _, appt := range appts {
		if appt.ExternalEventID != nil {
			continue
		}
		start, err := appt.StartInstant(s.loc)
		if err != nil {
			continue
		}
		if start.Equal(ev.Start) {
			return appt
		}
	}
	return nil
}

// importEvent materializes a calendar-only event as a local appointment.
// Imported records bypass the availability checker and carry no
// cancellation token.
func (s *Service) importEvent(ctx context.Context, ev *calendar.Event) error {
	start := ev.Start.In(s.loc)

	name, service := parseEventTitle(ev.Title)

	duration := int(ev.End.Sub(ev.Start).Minutes())
	if duration <= 0 {
		duration = service.Duration(false)
	}

	appt := &domain.Appointment{
		PatientName:     name,
		Date:            domain.DayOf(start),
		StartTime:       types.NewTimeString(start),
		DurationMinutes: duration,
		ServiceType:     service,
		Status:          domain.StatusConfirmed,
		Notes:           ev.Description,
		ExternalEventID: ptr.Ptr(ev.ID),
		CreatedBy:       domain.CreatedByCalendar,
	}

	_, err := s.repo.Create(ctx, appt)
	if err != nil {
		return fmt.Errorf("service.calendarsync: importEvent - create: %w", err)
	}
	return nil
}

// parseEventTitle splits the "name - service" convention used for pushed
// events. Titles that do not follow it become the patient name of a plain
// consultation.
func parseEventTitle(title string) (string, domain.ServiceType) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Evento externo", domain.ServiceConsultation
	}

	if idx := strings.LastIndex(title, " - "); idx > 0 {
		name := strings.TrimSpace(title[:idx])
		label := strings.TrimSpace(title[idx+3:])
		return name, domain.ServiceTypeFromLabel(label)
	}
	return title, domain.ServiceConsultation
}
