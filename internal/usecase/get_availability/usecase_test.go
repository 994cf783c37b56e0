package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

type stubSchedule struct {
	day domain.DayType
	cfg domain.ScheduleConfig
}

func (s *stubSchedule) ResolveDay(_ context.Context, _ time.Time) (domain.DayType, *domain.ScheduleConfig, error) {
	cfg := s.cfg
	return s.day, &cfg, nil
}

type stubRepo struct {
	existing []*domain.Appointment
}

func (r *stubRepo) GetWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return r.existing, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func openSchedule() *stubSchedule {
	return &stubSchedule{day: domain.DayType{
		Kind:      domain.DayRegularWorkday,
		OpenTime:  "09:00",
		CloseTime: "12:00",
	}}
}

func request() *Request {
	return &Request{
		Date:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Service: domain.ServiceConsultation,
	}
}

func slotTimes(resp *Response) []types.TimeString {
	out := make([]types.TimeString, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		out = append(out, s.Time)
	}
	return out
}

func availability(resp *Response) map[types.TimeString]bool {
	out := make(map[types.TimeString]bool, len(resp.Slots))
	for _, s := range resp.Slots {
		out[s.Time] = s.Available
	}
	return out
}

func TestExecuteMorningWindow(t *testing.T) {
	uc := NewUseCase(openSchedule(), &stubRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	want := []types.TimeString{
		"09:00", "09:20", "09:40", "10:00", "10:20",
		"10:40", "11:00", "11:20", "11:40",
	}
	assert.Equal(t, want, slotTimes(resp))
	for _, s := range resp.Slots {
		assert.True(t, s.Available, "slot %s", s.Time)
		assert.Equal(t, domain.ReasonNone, s.Reason)
	}
}

func TestExecuteMarksBookedSlot(t *testing.T) {
	repo := &stubRepo{existing: []*domain.Appointment{{
		ID:              1,
		StartTime:       "09:00",
		DurationMinutes: 20,
		ServiceType:     domain.ServiceConsultation,
		Status:          domain.StatusConfirmed,
	}}}
	uc := NewUseCase(openSchedule(), repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	avail := availability(resp)
	assert.False(t, avail["09:00"])
	assert.True(t, avail["09:20"])
	assert.True(t, avail["11:40"])
}

func TestExecuteClosedDay(t *testing.T) {
	uc := NewUseCase(&stubSchedule{day: domain.DayType{Kind: domain.DayBlocked}}, &stubRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, domain.DayBlocked, resp.Kind)
	assert.Empty(t, resp.Slots)
	assert.True(t, resp.OpenTime.IsZero())
}

func TestExecuteInsertsLegacySlot(t *testing.T) {
	// An 11:00 close does not reach 11:40 on the grid; the historical slot
	// is still offered, in order.
	uc := NewUseCase(&stubSchedule{day: domain.DayType{
		Kind:      domain.DayRegularWorkday,
		OpenTime:  "09:00",
		CloseTime: "11:00",
	}}, &stubRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	want := []types.TimeString{"09:00", "09:20", "09:40", "10:00", "10:20", "10:40", "11:40"}
	assert.Equal(t, want, slotTimes(resp))
	assert.True(t, availability(resp)["11:40"])
}

func TestExecuteProcedureWindowVerdicts(t *testing.T) {
	req := request()
	req.Service = domain.ServiceIUDPlacement
	uc := NewUseCase(openSchedule(), &stubRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// The 40-minute placement at 11:40 runs to 12:20, inside the grace
	// window past close.
	avail := availability(resp)
	assert.True(t, avail["11:00"])
	assert.True(t, avail["11:40"])
}

func TestExecuteInvalidInput(t *testing.T) {
	uc := NewUseCase(openSchedule(), &stubRepo{}, nopLogger{})

	req := request()
	req.Date = time.Time{}
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = request()
	req.Service = "botox"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
