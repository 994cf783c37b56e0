package get_availability

import (
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

// Request asks for the bookable slots of one date for one service.
type Request struct {
	Date    time.Time
	Service domain.ServiceType
}

// Slot is one candidate start with its verdict. Reason is empty for
// available slots.
type Slot struct {
	Time      types.TimeString
	Available bool
	Reason    domain.ConflictReason
}

// Response carries the day classification and the full candidate list.
// Closed days return an empty list with the kind explaining why.
type Response struct {
	Date      time.Time
	Kind      domain.DayKind
	OpenTime  types.TimeString
	CloseTime types.TimeString
	Slots     []Slot
}
