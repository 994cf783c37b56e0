package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Logger is the logging surface the client needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client talks to the external calendar service over JSON/HTTP. The
// enabled flag is carried by the client value itself and injected where
// needed; nothing reads process-wide state.
type Client struct {
	baseURL    string
	calendarID string
	authToken  string
	enabled    bool
	httpClient *http.Client
	log        Logger
}

// NewClient creates a calendar client. A disabled client is valid: every
// operation returns ErrDisabled, which callers already treat as a
// best-effort failure.
func NewClient(baseURL, calendarID, authToken string, enabled bool, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		calendarID: calendarID,
		authToken:  authToken,
		enabled:    enabled,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Enabled reports whether the calendar bridge is active.
func (c *Client) Enabled() bool {
	return c.enabled
}

// CreateEvent creates an event and returns its opaque ID.
func (c *Client) CreateEvent(ctx context.Context, event *Event) (string, error) {
	if !c.enabled {
		return "", ErrDisabled
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(c.calendarID))

	var created Event
	if err := c.do(ctx, http.MethodPost, endpoint, event, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("%w: created event has no id", ErrInvalidResponse)
	}
	return created.ID, nil
}

// UpdateEvent replaces the time and title of an existing event.
func (c *Client) UpdateEvent(ctx context.Context, eventID string, event *Event) error {
	if !c.enabled {
		return ErrDisabled
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s",
		c.baseURL, url.PathEscape(c.calendarID), url.PathEscape(eventID))
	return c.do(ctx, http.MethodPatch, endpoint, event, nil)
}

// DeleteEvent removes an event. Deleting an already-missing event reports
// ErrEventNotFound; callers usually ignore it.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	if !c.enabled {
		return ErrDisabled
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s",
		c.baseURL, url.PathEscape(c.calendarID), url.PathEscape(eventID))
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

// ListEvents returns every event whose start falls inside [from, to].
func (c *Client) ListEvents(ctx context.Context, from, to time.Time) ([]*Event, error) {
	if !c.enabled {
		return nil, ErrDisabled
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events?timeMin=%s&timeMax=%s",
		c.baseURL, url.PathEscape(c.calendarID),
		url.QueryEscape(from.Format(time.RFC3339)),
		url.QueryEscape(to.Format(time.RFC3339)))

	var resp listEventsResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}

	events := make([]*Event, 0, len(resp.Events))
	for i := range resp.Events {
		events = append(events, &resp.Events[i])
	}
	return events, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request body: %v", ErrInternal, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Continue below.
	case resp.StatusCode == http.StatusNotFound:
		return ErrEventNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		c.log.Warn("calendar service rate limited %s %s", method, endpoint)
		return ErrRateLimited
	default:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
