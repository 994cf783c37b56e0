package cancel_by_token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	storage "github.com/matutevip/ginecoschedule-sub001/internal/infra/storage/appointment"
)

type stubRepo struct {
	appts    map[string]*domain.Appointment
	statuses map[int64]domain.AppointmentStatus
}

func newStubRepo(appts ...*domain.Appointment) *stubRepo {
	byToken := make(map[string]*domain.Appointment)
	for _, a := range appts {
		if a.CancellationToken != nil {
			byToken[*a.CancellationToken] = a
		}
	}
	return &stubRepo{appts: byToken, statuses: make(map[int64]domain.AppointmentStatus)}
}

func (r *stubRepo) GetByCancellationToken(_ context.Context, token string) (*domain.Appointment, error) {
	appt, ok := r.appts[token]
	if !ok {
		return nil, storage.ErrAppointmentNotFound
	}
	cp := *appt
	return &cp, nil
}

func (r *stubRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	r.statuses[id] = status
	return nil
}

type stubCalendar struct {
	deleted []int64
}

func (c *stubCalendar) PushDelete(_ context.Context, appt *domain.Appointment) error {
	c.deleted = append(c.deleted, appt.ID)
	return nil
}

type stubNotifier struct {
	cancelled []int64
}

func (n *stubNotifier) AppointmentCancelledByPatient(appt *domain.Appointment) {
	n.cancelled = append(n.cancelled, appt.ID)
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

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func tokenAppointment(id int64, token string, expiresAt time.Time) *domain.Appointment {
	return &domain.Appointment{
		ID:                id,
		PatientName:       "Ana Pérez",
		Date:              time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		StartTime:         "09:20",
		DurationMinutes:   20,
		ServiceType:       domain.ServiceConsultation,
		Status:            domain.StatusConfirmed,
		CancellationToken: &token,
		TokenExpiresAt:    &expiresAt,
	}
}

func newUseCase(repo *stubRepo, cal *stubCalendar, n *stubNotifier) *UseCase {
	return NewUseCase(repo, cal, n, &stubTxManager{}, nopLogger{}).
		WithTimeProvider(&fixedClock{now: testNow})
}

func TestExecuteCancelsAppointment(t *testing.T) {
	appt := tokenAppointment(1, "tok-1", testNow.Add(24*time.Hour))
	repo := newStubRepo(appt)
	cal := &stubCalendar{}
	notifier := &stubNotifier{}

	resp, err := newUseCase(repo, cal, notifier).Execute(context.Background(), "tok-1")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelledByPatient, resp.Status)
	assert.Equal(t, domain.StatusCancelledByPatient, repo.statuses[1])
	assert.Equal(t, []int64{1}, cal.deleted)
	assert.Equal(t, []int64{1}, notifier.cancelled)
	assert.Equal(t, "Ana Pérez", resp.PatientName)
}

func TestExecuteUnknownToken(t *testing.T) {
	repo := newStubRepo()

	_, err := newUseCase(repo, &stubCalendar{}, &stubNotifier{}).Execute(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestExecuteEmptyToken(t *testing.T) {
	repo := newStubRepo()

	_, err := newUseCase(repo, &stubCalendar{}, &stubNotifier{}).Execute(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteExpiredToken(t *testing.T) {
	appt := tokenAppointment(1, "tok-1", testNow.Add(-time.Minute))
	repo := newStubRepo(appt)
	notifier := &stubNotifier{}

	_, err := newUseCase(repo, &stubCalendar{}, notifier).Execute(context.Background(), "tok-1")
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Empty(t, repo.statuses)
	assert.Empty(t, notifier.cancelled)
}

func TestExecuteExpiryInstantIsExclusive(t *testing.T) {
	appt := tokenAppointment(1, "tok-1", testNow)
	repo := newStubRepo(appt)

	_, err := newUseCase(repo, &stubCalendar{}, &stubNotifier{}).Execute(context.Background(), "tok-1")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestExecuteMissingExpiryTreatedAsExpired(t *testing.T) {
	appt := tokenAppointment(1, "tok-1", testNow.Add(time.Hour))
	appt.TokenExpiresAt = nil
	repo := newStubRepo(appt)

	_, err := newUseCase(repo, &stubCalendar{}, &stubNotifier{}).Execute(context.Background(), "tok-1")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestExecuteTerminalAppointment(t *testing.T) {
	appt := tokenAppointment(1, "tok-1", testNow.Add(time.Hour))
	appt.Status = domain.StatusCancelledByPatient
	repo := newStubRepo(appt)

	_, err := newUseCase(repo, &stubCalendar{}, &stubNotifier{}).Execute(context.Background(), "tok-1")
	assert.ErrorIs(t, err, ErrAlreadyTerminal)
}

func TestValidateDoesNotMutate(t *testing.T) {
	appt := tokenAppointment(1, "tok-1", testNow.Add(time.Hour))
	repo := newStubRepo(appt)
	cal := &stubCalendar{}
	notifier := &stubNotifier{}

	resp, err := newUseCase(repo, cal, notifier).Validate(context.Background(), "tok-1")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Empty(t, repo.statuses)
	assert.Empty(t, cal.deleted)
	assert.Empty(t, notifier.cancelled)
}

func TestValidateSurfacesSameErrors(t *testing.T) {
	repo := newStubRepo()

	_, err := newUseCase(repo, &stubCalendar{}, &stubNotifier{}).Validate(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
