package domain

import "github.com/matutevip/ginecoschedule-sub001/pkg/types"

const (
	// SlotStepMinutes is the primary slot granularity.
	SlotStepMinutes = 20

	// LegacyStepMinutes is the secondary granularity still accepted for
	// appointments created under the old half-hour grid.
	LegacyStepMinutes = 30

	// MaxEndGraceMinutes is how far past closing a 40-minute procedure may
	// run before it is rejected.
	MaxEndGraceMinutes = 30

	// ExtendedProcedureMinutes marks the duration from which the
	// end-of-day procedure cutoff applies instead of the plain
	// within-hours rule.
	ExtendedProcedureMinutes = 40

	// TokenExpiryLeadHours: a cancellation token stops working this many
	// hours before the appointment.
	TokenExpiryLeadHours = 48
)

// LegacySlotTime is a historical fixed slot that predates the configurable
// schedule. It is always bookable for any service, regardless of the
// configured window, and only conflicts with appointments at the exact same
// instant.
var LegacySlotTime = types.TimeString("11:40")

// Time format constants.
const (
	TimeFormat = "15:04"
	DateFormat = "2006-01-02"
)
