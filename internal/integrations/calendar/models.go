package calendar

import "time"

// Event is the provider-neutral representation of one external calendar
// event. IDs are opaque and assigned by the remote service.
type Event struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// listEventsResponse is the wire shape of the range listing.
type listEventsResponse struct {
	Events []Event `json:"events"`
}

// ErrorResponse is the error payload of the calendar service.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
