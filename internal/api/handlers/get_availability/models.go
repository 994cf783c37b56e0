package get_availability

import (
	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	getAvailability "github.com/matutevip/ginecoschedule-sub001/internal/usecase/get_availability"
)

// SlotResponse is one graded candidate slot.
type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// AvailabilityResponse is the full availability picture of one date.
type AvailabilityResponse struct {
	Date      string         `json:"date"`
	DayKind   string         `json:"dayKind"`
	OpenTime  string         `json:"openTime,omitempty"`
	CloseTime string         `json:"closeTime,omitempty"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse converts the use case response to the HTTP shape.
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		DayKind: string(resp.Kind),
		Slots:   make([]SlotResponse, 0, len(resp.Slots)),
	}
	if !resp.OpenTime.IsZero() {
		out.OpenTime = resp.OpenTime.String()
		out.CloseTime = resp.CloseTime.String()
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Time:      s.Time.String(),
			Available: s.Available,
			Reason:    string(s.Reason),
		})
	}
	return out
}
