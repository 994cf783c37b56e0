package domain

import "github.com/matutevip/ginecoschedule-sub001/pkg/types"

// ConflictReason distinguishes why a candidate slot was rejected.
type ConflictReason string

const (
	ReasonDayClosed     ConflictReason = "day_closed"
	ReasonMisaligned    ConflictReason = "misaligned"
	ReasonOutsideHours  ConflictReason = "outside_hours"
	ReasonOverlaps      ConflictReason = "overlaps_appointment"
	ReasonExceedsWindow ConflictReason = "exceeds_procedure_window"
	ReasonNone          ConflictReason = ""
)

// SlotRequest is one candidate (start, service) pair to validate against a
// resolved day and the day's existing appointments.
type SlotRequest struct {
	Start    types.TimeString
	Service  ServiceType
	Day      DayType
	Existing []*Appointment
	// ExcludeID removes the appointment being rescheduled from its own
	// conflict check; zero excludes nothing.
	ExcludeID int64
	// ExtendedPap selects the 30-minute pap-smear generation.
	ExtendedPap bool
}

// CheckSlot applies the booking rules in order and returns the first
// violated rule, or ReasonNone when the slot is free.
//
// Rule order: day openness, step alignment, within-hours (with the legacy
// fixed-slot exception), duration-aware overlap, procedure end cutoff.
func CheckSlot(req SlotRequest) (ConflictReason, bool) {
	if !req.Day.IsOpen() {
		return ReasonDayClosed, false
	}

	minuteOfHour, err := req.Start.MinuteOfHour()
	if err != nil {
		return ReasonMisaligned, false
	}
	if minuteOfHour%SlotStepMinutes != 0 && minuteOfHour%LegacyStepMinutes != 0 {
		return ReasonMisaligned, false
	}

	legacySlot := req.Start.Equal(LegacySlotTime)
	duration := req.Service.Duration(req.ExtendedPap)

	if !legacySlot {
		if reason, ok := checkWindow(req.Start, duration, req.Service, req.Day); !ok {
			return reason, false
		}
	}

	if conflicts(req, legacySlot) {
		return ReasonOverlaps, false
	}

	return ReasonNone, true
}

// checkWindow validates the candidate against the day's open/close window.
// Ordinary services must end by close. 40-minute procedures are bounded by
// the cutoff instead: they may run up to MaxEndGraceMinutes past close.
// Services exempt from the cutoff only need to start on an existing slot.
func checkWindow(start types.TimeString, duration int, service ServiceType, day DayType) (ConflictReason, bool) {
	if start.IsBefore(day.OpenTime) {
		return ReasonOutsideHours, false
	}

	if service.ExemptFromMaxEnd() {
		lastStart, err := day.CloseTime.AddMinutes(-SlotStepMinutes)
		if err != nil || start.IsAfter(lastStart) {
			return ReasonOutsideHours, false
		}
		return ReasonNone, true
	}

	end, err := start.AddMinutes(duration)
	if err != nil {
		// Past midnight: never bookable.
		return ReasonOutsideHours, false
	}

	if duration >= ExtendedProcedureMinutes {
		cutoff, cerr := day.CloseTime.AddMinutes(MaxEndGraceMinutes)
		if cerr != nil || end.IsAfter(cutoff) {
			return ReasonExceedsWindow, false
		}
		return ReasonNone, true
	}

	if end.IsAfter(day.CloseTime) {
		return ReasonOutsideHours, false
	}
	return ReasonNone, true
}

// conflicts applies the duration-aware overlap rule. Two occupied intervals
// [start, start+duration) conflict when they intersect; back-to-back
// appointments (one starting exactly when the other ends) do not. The
// legacy fixed slot and overlap-exempt services use the narrow rule: they
// only conflict with an appointment at the exact same start instant, in
// either direction of the comparison.
func conflicts(req SlotRequest, legacySlot bool) bool {
	duration := req.Service.Duration(req.ExtendedPap)
	end, err := req.Start.AddMinutes(duration)
	if err != nil {
		return false
	}

	narrowCandidate := legacySlot || req.Service.ExemptFromOverlap()

	for _, appt := range req.Existing {
		if req.ExcludeID != 0 && appt.ID == req.ExcludeID {
			continue
		}
		if !appt.IsActive() {
			continue
		}

		// Same-instant conflicts apply to everyone, exemptions included.
		if appt.StartTime.Equal(req.Start) {
			return true
		}

		narrowExisting := appt.ServiceType.ExemptFromOverlap() || appt.StartTime.Equal(LegacySlotTime)
		if narrowCandidate || narrowExisting {
			continue
		}

		apptEnd, aerr := appt.EndTime()
		if aerr != nil {
			continue
		}

		// Strict inequalities keep boundary contact conflict-free.
		if appt.StartTime.IsBefore(end) && apptEnd.IsAfter(req.Start) {
			return true
		}
	}

	return false
}
