package calendarsync

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	"github.com/matutevip/ginecoschedule-sub001/internal/integrations/calendar"
	"github.com/matutevip/ginecoschedule-sub001/pkg/metrics"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

type stubClient struct {
	enabled bool
	events  []*calendar.Event

	created []*calendar.Event
	updated map[string]*calendar.Event
	deleted []string

	nextID    int
	createErr error
	updateErr error
	deleteErr error
}

func newStubClient(events ...*calendar.Event) *stubClient {
	return &stubClient{enabled: true, events: events, updated: make(map[string]*calendar.Event)}
}

func (c *stubClient) Enabled() bool { return c.enabled }

func (c *stubClient) CreateEvent(_ context.Context, event *calendar.Event) (string, error) {
	if c.createErr != nil {
		return "", c.createErr
	}
	c.nextID++
	c.created = append(c.created, event)
	return fmt.Sprintf("ev-new-%d", c.nextID), nil
}

func (c *stubClient) UpdateEvent(_ context.Context, eventID string, event *calendar.Event) error {
	if c.updateErr != nil {
		return c.updateErr
	}
	c.updated[eventID] = event
	return nil
}

func (c *stubClient) DeleteEvent(_ context.Context, eventID string) error {
	if c.deleteErr != nil {
		return c.deleteErr
	}
	c.deleted = append(c.deleted, eventID)
	return nil
}

func (c *stubClient) ListEvents(_ context.Context, _, _ time.Time) ([]*calendar.Event, error) {
	return c.events, nil
}

type stubRepo struct {
	appts []*domain.Appointment

	created     []*domain.Appointment
	statuses    map[int64]domain.AppointmentStatus
	moved       map[int64]types.TimeString
	eventIDSets map[int64]*string
	nextID      int64
}

func newStubRepo(appts ...*domain.Appointment) *stubRepo {
	return &stubRepo{
		appts:       appts,
		statuses:    make(map[int64]domain.AppointmentStatus),
		moved:       make(map[int64]types.TimeString),
		eventIDSets: make(map[int64]*string),
		nextID:      100,
	}
}

func (r *stubRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.nextID++
	cp := *appt
	cp.ID = r.nextID
	r.created = append(r.created, &cp)
	return &cp, nil
}

func (r *stubRepo) GetWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return r.appts, nil
}

func (r *stubRepo) UpdateTime(_ context.Context, id int64, _ time.Time, start types.TimeString, _ int) error {
	r.moved[id] = start
	return nil
}

func (r *stubRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	r.statuses[id] = status
	return nil
}

func (r *stubRepo) SetExternalEventID(_ context.Context, id int64, eventID *string) error {
	r.eventIDSets[id] = eventID
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	montevideo, _ = time.LoadLocation("America/Montevideo")
	sweepNow      = time.Date(2025, 6, 2, 7, 0, 0, 0, montevideo)
)

func newService(client CalendarClient, repo AppointmentRepo) *Service {
	m := metrics.NewWith(prometheus.NewRegistry(), "test")
	return NewService(client, repo, montevideo, 30, m, nopLogger{})
}

func mirrored(id int64, eventID string, day, start string, createdBy domain.CreatedBy) *domain.Appointment {
	date, _ := time.ParseInLocation(domain.DateFormat, day, montevideo)
	return &domain.Appointment{
		ID:              id,
		PatientName:     "Ana Pérez",
		Date:            date,
		StartTime:       types.TimeString(start),
		DurationMinutes: 20,
		ServiceType:     domain.ServiceConsultation,
		Status:          domain.StatusConfirmed,
		ExternalEventID: &eventID,
		CreatedBy:       createdBy,
	}
}

func eventAt(id, day, start string) *calendar.Event {
	date, _ := time.ParseInLocation(domain.DateFormat, day, montevideo)
	st, _ := types.TimeString(start).At(date, montevideo)
	return &calendar.Event{
		ID:    id,
		Title: "Ana Pérez - Consulta",
		Start: st,
		End:   st.Add(20 * time.Minute),
	}
}

func TestSweepDisabledClient(t *testing.T) {
	client := newStubClient()
	client.enabled = false

	err := newService(client, newStubRepo()).Sweep(context.Background(), sweepNow)
	assert.ErrorIs(t, err, ErrCalendarDisabled)
}

func TestSweepCancelsWhenEventGone(t *testing.T) {
	appt := mirrored(1, "ev-1", "2025-06-09", "09:00", domain.CreatedByPatient)
	repo := newStubRepo(appt)
	client := newStubClient() // empty calendar

	err := newService(client, repo).Sweep(context.Background(), sweepNow)
	require.NoError(t, err)

	// Cancelled, never deleted.
	assert.Equal(t, domain.StatusCancelledByProfessional, repo.statuses[1])
	assert.Empty(t, client.deleted)
}

func TestSweepMatchingEventNoMutation(t *testing.T) {
	appt := mirrored(1, "ev-1", "2025-06-09", "09:00", domain.CreatedByPatient)
	repo := newStubRepo(appt)
	client := newStubClient(eventAt("ev-1", "2025-06-09", "09:00"))

	err := newService(client, repo).Sweep(context.Background(), sweepNow)
	require.NoError(t, err)

	assert.Empty(t, repo.statuses)
	assert.Empty(t, repo.moved)
	assert.Empty(t, repo.created)
	assert.Empty(t, client.updated)
}

func TestSweepFollowsMoveOfExternalAppointment(t *testing.T) {
	appt := mirrored(1, "ev-1", "2025-06-09", "09:00", domain.CreatedByCalendar)
	repo := newStubRepo(appt)
	client := newStubClient(eventAt("ev-1", "2025-06-09", "10:00"))

	err := newService(client, repo).Sweep(context.Background(), sweepNow)
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("10:00"), repo.moved[1])
	assert.Empty(t, client.updated)
}

func TestSweepFollowsMoveOfPatientBookedAppointment(t *testing.T) {
	appt := mirrored(1, "ev-1", "2025-06-09", "09:00", domain.CreatedByPatient)
	repo := newStubRepo(appt)
	client := newStubClient(eventAt("ev-1", "2025-06-09", "10:00"))

	err := newService(client, repo).Sweep(context.Background(), sweepNow)
	require.NoError(t, err)

	// The calendar wins during the sweep regardless of who booked: the
	// record follows the event, the event is never rewritten.
	assert.Equal(t, types.TimeString("10:00"), repo.moved[1])
	assert.Empty(t, client.updated)
	assert.Empty(t, repo.statuses)
}

func TestSweepAdoptsLooseAppointment(t *testing.T) {
	loose := mirrored(1, "", "2025-06-09", "09:00", domain.CreatedByAdmin)
	loose.ExternalEventID = nil
	repo := newStubRepo(loose)
	client := newStubClient(eventAt("ev-7", "2025-06-09", "09:00"))

	err := newService(client, repo).Sweep(context.Background(), sweepNow)
	require.NoError(t, err)

	require.Contains(t, repo.eventIDSets, int64(1))
	require.NotNil(t, repo.eventIDSets[1])
	assert.Equal(t, "ev-7", *repo.eventIDSets[1])
	assert.Empty(t, repo.created)
}

func TestSweepImportsUnknownEvent(t *testing.T) {
	repo := newStubRepo()
	ev := eventAt("ev-9", "2025-06-09", "10:00")
	ev.Title = "Lucía Gómez - Colocacion de DIU"
	ev.End = ev.Start.Add(40 * time.Minute)
	client := newStubClient(ev)

	err := newService(client, repo).Sweep(context.Background(), sweepNow)
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	imported := repo.created[0]
	assert.Equal(t, "Lucía Gómez", imported.PatientName)
	assert.Equal(t, domain.ServiceIUDPlacement, imported.ServiceType)
	assert.Equal(t, types.TimeString("10:00"), imported.StartTime)
	assert.Equal(t, 40, imported.DurationMinutes)
	assert.Equal(t, domain.StatusConfirmed, imported.Status)
	assert.Equal(t, domain.CreatedByCalendar, imported.CreatedBy)
	require.NotNil(t, imported.ExternalEventID)
	assert.Equal(t, "ev-9", *imported.ExternalEventID)
	assert.Nil(t, imported.CancellationToken)
}

func TestSweepImportFallsBackToConsultation(t *testing.T) {
	repo := newStubRepo()
	ev := eventAt("ev-9", "2025-06-09", "10:00")
	ev.Title = "Reunión externa"
	ev.End = ev.Start
	client := newStubClient(ev)

	err := newService(client, repo).Sweep(context.Background(), sweepNow)
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	imported := repo.created[0]
	assert.Equal(t, "Reunión externa", imported.PatientName)
	assert.Equal(t, domain.ServiceConsultation, imported.ServiceType)
	// Zero-length event spans fall back to the service default.
	assert.Equal(t, 20, imported.DurationMinutes)
}

func TestSweepDeduplicatesEventIDs(t *testing.T) {
	repo := newStubRepo()
	ev := eventAt("ev-9", "2025-06-09", "10:00")
	client := newStubClient(ev, ev)

	err := newService(client, repo).Sweep(context.Background(), sweepNow)
	require.NoError(t, err)

	assert.Len(t, repo.created, 1)
}

func TestSweepIsIdempotentOnAgreement(t *testing.T) {
	appt := mirrored(1, "ev-1", "2025-06-09", "09:00", domain.CreatedByPatient)
	repo := newStubRepo(appt)
	client := newStubClient(eventAt("ev-1", "2025-06-09", "09:00"))
	svc := newService(client, repo)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Sweep(context.Background(), sweepNow))
	}

	assert.Empty(t, repo.statuses)
	assert.Empty(t, repo.moved)
	assert.Empty(t, repo.created)
}

func TestPushCreateStoresEventID(t *testing.T) {
	appt := mirrored(1, "", "2025-06-09", "09:00", domain.CreatedByPatient)
	appt.ExternalEventID = nil
	repo := newStubRepo(appt)
	client := newStubClient()

	err := newService(client, repo).PushCreate(context.Background(), appt)
	require.NoError(t, err)

	require.NotNil(t, appt.ExternalEventID)
	assert.Equal(t, repo.eventIDSets[1], appt.ExternalEventID)
	require.Len(t, client.created, 1)
	assert.Equal(t, "Ana Pérez - Consulta", client.created[0].Title)
}

func TestPushUpdateRecreatesVanishedEvent(t *testing.T) {
	appt := mirrored(1, "ev-gone", "2025-06-09", "09:00", domain.CreatedByPatient)
	repo := newStubRepo(appt)
	client := newStubClient()
	client.updateErr = calendar.ErrEventNotFound

	err := newService(client, repo).PushUpdate(context.Background(), appt)
	require.NoError(t, err)

	require.Len(t, client.created, 1)
	require.NotNil(t, appt.ExternalEventID)
	assert.NotEqual(t, "ev-gone", *appt.ExternalEventID)
}

func TestPushDeleteToleratesMissingEvent(t *testing.T) {
	appt := mirrored(1, "ev-1", "2025-06-09", "09:00", domain.CreatedByPatient)
	repo := newStubRepo(appt)
	client := newStubClient()
	client.deleteErr = calendar.ErrEventNotFound

	err := newService(client, repo).PushDelete(context.Background(), appt)
	require.NoError(t, err)

	assert.Nil(t, appt.ExternalEventID)
	assert.Contains(t, repo.eventIDSets, int64(1))
	assert.Nil(t, repo.eventIDSets[1])
}

func TestPushDeleteNoEventIsNoop(t *testing.T) {
	appt := mirrored(1, "", "2025-06-09", "09:00", domain.CreatedByPatient)
	appt.ExternalEventID = nil
	repo := newStubRepo(appt)
	client := newStubClient()

	err := newService(client, repo).PushDelete(context.Background(), appt)
	require.NoError(t, err)
	assert.Empty(t, client.deleted)
	assert.Empty(t, repo.eventIDSets)
}
