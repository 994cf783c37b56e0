package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
)

type stubRepo struct {
	existing []*domain.Appointment
	created  []*domain.Appointment
	nextID   int64
}

func (r *stubRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.nextID++
	cp := *appt
	cp.ID = r.nextID
	cp.CreatedAt = time.Now()
	r.created = append(r.created, &cp)
	return &cp, nil
}

func (r *stubRepo) GetWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return r.existing, nil
}

type stubSchedule struct {
	day domain.DayType
	cfg domain.ScheduleConfig
}

func (s *stubSchedule) ResolveDay(_ context.Context, _ time.Time) (domain.DayType, *domain.ScheduleConfig, error) {
	cfg := s.cfg
	return s.day, &cfg, nil
}

type stubCalendar struct {
	pushed []int64
	err    error
}

func (c *stubCalendar) PushCreate(_ context.Context, appt *domain.Appointment) error {
	if c.err != nil {
		return c.err
	}
	c.pushed = append(c.pushed, appt.ID)
	return nil
}

type stubNotifier struct {
	booked []string
}

func (n *stubNotifier) AppointmentBooked(_ *domain.Appointment, token string) {
	n.booked = append(n.booked, token)
}

type stubTxManager struct{}

func (m *stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc       *UseCase
	repo     *stubRepo
	calendar *stubCalendar
	notifier *stubNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("America/Montevideo")
	require.NoError(t, err)

	repo := &stubRepo{}
	schedule := &stubSchedule{
		day: domain.DayType{
			Kind:      domain.DayRegularWorkday,
			OpenTime:  "09:00",
			CloseTime: "12:00",
		},
	}
	calendar := &stubCalendar{}
	notifier := &stubNotifier{}

	uc := NewUseCase(repo, schedule, calendar, notifier, &stubTxManager{}, loc, nopLogger{}).
		WithTimeProvider(&fixedClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, loc)})

	return &fixture{uc: uc, repo: repo, calendar: calendar, notifier: notifier}
}

func validRequest() *Request {
	return &Request{
		PatientName: "Ana Pérez",
		Email:       "ana@example.com",
		Phone:       "099123456",
		Date:        time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00",
		Service:     domain.ServiceConsultation,
	}
}

func TestExecuteCreatesPendingAppointmentWithToken(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, 20, resp.DurationMinutes)
	assert.NotEmpty(t, resp.CancellationToken)
	require.NotNil(t, resp.TokenExpiresAt)

	// The token stops working 48 hours before the appointment itself.
	created := f.repo.created[0]
	start, err := created.StartInstant(created.Date.Location())
	require.NoError(t, err)
	assert.Equal(t, start.Add(-48*time.Hour), *resp.TokenExpiresAt)

	assert.Equal(t, []int64{resp.ID}, f.calendar.pushed)
	assert.Equal(t, []string{resp.CancellationToken}, f.notifier.booked)
}

func TestExecuteRejectsConflictingSlot(t *testing.T) {
	f := newFixture(t)
	f.repo.existing = []*domain.Appointment{{
		ID:              5,
		StartTime:       "09:00",
		DurationMinutes: 20,
		ServiceType:     domain.ServiceConsultation,
		Status:          domain.StatusConfirmed,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.ReasonOverlaps, conflict.Reason)

	assert.Empty(t, f.repo.created)
	assert.Empty(t, f.calendar.pushed)
	assert.Empty(t, f.notifier.booked)
}

func TestExecuteRejectsPastDate(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Date = time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecuteRejectsInvalidInput(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.PatientName = "  "
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.Email = "not-an-email"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.Service = "massage"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteExternalSourceBypassesChecks(t *testing.T) {
	f := newFixture(t)

	// Occupied slot on a past date: both rules would reject a patient
	// booking, but calendar-sourced records are trusted verbatim.
	f.repo.existing = []*domain.Appointment{{
		ID:              5,
		StartTime:       "09:00",
		DurationMinutes: 20,
		ServiceType:     domain.ServiceConsultation,
		Status:          domain.StatusConfirmed,
	}}
	req := validRequest()
	req.Date = time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	req.CreatedBy = domain.CreatedByCalendar
	req.Email = ""

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Empty(t, resp.CancellationToken)
	assert.Nil(t, resp.TokenExpiresAt)

	// No push back to the calendar the event came from, no patient email.
	assert.Empty(t, f.calendar.pushed)
	assert.Empty(t, f.notifier.booked)
}

func TestExecuteAdminBookingIsConfirmed(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.CreatedBy = domain.CreatedByAdmin

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.NotEmpty(t, resp.CancellationToken)
}

func TestExecuteCalendarPushFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture(t)
	f.calendar.err = errors.New("calendar unreachable")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, []string{resp.CancellationToken}, f.notifier.booked)
}

func TestExecuteUsesExtendedPapDuration(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.Service = domain.ServicePapSmear
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 20, resp.DurationMinutes)

	g := newFixture(t)
	g.uc = NewUseCase(g.repo, &stubSchedule{
		day: domain.DayType{Kind: domain.DayRegularWorkday, OpenTime: "09:00", CloseTime: "12:00"},
		cfg: domain.ScheduleConfig{ExtendedPapDuration: true},
	}, g.calendar, g.notifier, &stubTxManager{}, time.UTC, nopLogger{}).
		WithTimeProvider(&fixedClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)})

	resp, err = g.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestExecuteClosedDayRejected(t *testing.T) {
	loc := time.UTC
	repo := &stubRepo{}
	uc := NewUseCase(repo, &stubSchedule{
		day: domain.DayType{Kind: domain.DayBlocked},
	}, &stubCalendar{}, &stubNotifier{}, &stubTxManager{}, loc, nopLogger{}).
		WithTimeProvider(&fixedClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, loc)})

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)

	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.ReasonDayClosed, conflict.Reason)
}
