package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	createAppointment "github.com/matutevip/ginecoschedule-sub001/internal/usecase/create_appointment"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

type stubUseCase struct {
	resp *createAppointment.Response
	err  error
}

func (s *stubUseCase) Execute(context.Context, *createAppointment.Request) (*createAppointment.Response, error) {
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func postAppointment(t *testing.T, uc CreateAppointmentUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

const validBody = `{"patientName":"Ana Pérez","email":"ana@example.com","phone":"099123456","date":"2026-09-15","startTime":"09:20","serviceType":"consultation"}`

func TestHandleCreatedBodyOmitsCancellationToken(t *testing.T) {
	expiry := time.Date(2026, 9, 13, 9, 20, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createAppointment.Response{
		ID:                7,
		PatientName:       "Ana Pérez",
		Email:             "ana@example.com",
		Phone:             "099123456",
		Date:              time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:         types.TimeString("09:20"),
		DurationMinutes:   20,
		Service:           domain.ServiceConsultation,
		Status:            domain.StatusPending,
		CancellationToken: "secret-token",
		TokenExpiresAt:    &expiry,
		CreatedAt:         time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}}

	rec := postAppointment(t, uc, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	// The token travels only in the confirmation email.
	assert.NotContains(t, body, "cancellationToken")
	assert.NotContains(t, body, "tokenExpiresAt")
	assert.NotContains(t, rec.Body.String(), "secret-token")

	assert.Equal(t, float64(7), body["id"])
	assert.Equal(t, "2026-09-15", body["date"])
	assert.Equal(t, "09:20", body["startTime"])
	assert.Equal(t, string(domain.StatusPending), body["status"])
}

func TestHandleConflictCarriesReason(t *testing.T) {
	uc := &stubUseCase{err: &createAppointment.SlotConflictError{Reason: domain.ReasonOverlaps}}

	rec := postAppointment(t, uc, validBody)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, msgSlotNotAvailable, body.Error)
	assert.Equal(t, string(domain.ReasonOverlaps), body.Reason)
}

func TestHandleMalformedBody(t *testing.T) {
	rec := postAppointment(t, &stubUseCase{}, `{"patientName":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
