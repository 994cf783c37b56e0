// Package get_availability computes the bookable slots of a date for a
// service: day classification, slot generation and the per-slot conflict
// verdicts, in one read-only pass.
package get_availability

import (
	"context"
	"fmt"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

type UseCase struct {
	scheduleService ScheduleService
	appointmentRepo AppointmentRepo
	logger          Logger
}

func NewUseCase(scheduleService ScheduleService, appointmentRepo AppointmentRepo, logger Logger) *UseCase {
	return &UseCase{
		scheduleService: scheduleService,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Execute resolves the day and grades every candidate slot. A closed day is
// a normal response, not an error.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	day, cfg, err := uc.scheduleService.ResolveDay(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to resolve day %s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to resolve day: %v", ErrInternal, err)
	}

	resp := &Response{
		Date: domain.DayOf(req.Date),
		Kind: day.Kind,
	}
	if !day.IsOpen() {
		uc.logger.Info("GetAvailability: %s is closed (%s)",
			req.Date.Format(domain.DateFormat), day.Kind)
		return resp, nil
	}
	resp.OpenTime = day.OpenTime
	resp.CloseTime = day.CloseTime

	starts, err := domain.GenerateSlots(day.OpenTime, day.CloseTime, domain.SlotStepMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	starts = withLegacySlot(starts)

	date := domain.DayOf(req.Date)
	existing, err := uc.appointmentRepo.GetWithFilter(ctx, domain.AppointmentsFilter{
		StartDate: &date,
		EndDate:   &date,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to load appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to load appointments: %v", ErrInternal, err)
	}

	resp.Slots = make([]Slot, 0, len(starts))
	for _, start := range starts {
		reason, ok := domain.CheckSlot(domain.SlotRequest{
			Start:       start,
			Service:     req.Service,
			Day:         day,
			Existing:    existing,
			ExtendedPap: cfg.ExtendedPapDuration,
		})
		resp.Slots = append(resp.Slots, Slot{Time: start, Available: ok, Reason: reason})
	}

	uc.logger.Info("GetAvailability: %s service=%s, %d candidates, %d appointments",
		req.Date.Format(domain.DateFormat), req.Service, len(resp.Slots), len(existing))
	return resp, nil
}

// withLegacySlot appends the historical fixed slot when generation did not
// already produce it, keeping the list ordered.
func withLegacySlot(starts []types.TimeString) []types.TimeString {
	for _, s := range starts {
		if s.Equal(domain.LegacySlotTime) {
			return starts
		}
	}

	out := make([]types.TimeString, 0, len(starts)+1)
	inserted := false
	for _, s := range starts {
		if !inserted && domain.LegacySlotTime.IsBefore(s) {
			out = append(out, domain.LegacySlotTime)
			inserted = true
		}
		out = append(out, s)
	}
	if !inserted {
		out = append(out, domain.LegacySlotTime)
	}
	return out
}

func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if _, err := domain.ParseServiceType(string(req.Service)); err != nil {
		return fmt.Errorf("%w: unknown service type %q", ErrInvalidInput, req.Service)
	}
	return nil
}
