package appointment

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	"github.com/matutevip/ginecoschedule-sub001/pkg/dbmetrics"
	"github.com/matutevip/ginecoschedule-sub001/pkg/psqlbuilder"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

// readRetries bounds the automatic retry of read-only statements on
// transient connection failures. Writes are never retried automatically:
// appointment creation is not idempotent.
const readRetries = 3

var appointmentColumns = []string{
	"id",
	"patient_name",
	"email",
	"phone",
	"appointment_date",
	"start_time",
	"duration_minutes",
	"service_type",
	"status",
	"notes",
	"cancellation_token",
	"token_expires_at",
	"external_event_id",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository persists appointments.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new appointment and returns it with generated fields
// populated. When the context carries a serializable transaction (the
// booking path) the insert joins it, making the availability check and the
// insert atomic.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"patient_name",
			"email",
			"phone",
			"appointment_date",
			"start_time",
			"duration_minutes",
			"service_type",
			"status",
			"notes",
			"cancellation_token",
			"token_expires_at",
			"external_event_id",
			"created_by",
		).
		Values(
			appt.PatientName,
			appt.Email,
			appt.Phone,
			appt.Date,
			appt.StartTime,
			appt.DurationMinutes,
			appt.ServiceType,
			appt.Status,
			appt.Notes,
			appt.CancellationToken,
			appt.TokenExpiresAt,
			appt.ExternalEventID,
			appt.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID fetches one appointment.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByCancellationToken fetches the appointment owning the given
// self-service cancellation token.
func (r *Repository) GetByCancellationToken(ctx context.Context, token string) (*domain.Appointment, error) {
	return r.getOne(ctx, squirrel.Eq{"cancellation_token": token})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var appt *domain.Appointment
	err = r.retryRead(ctx, func() error {
		row := executor.QueryRowContext(ctx, query, args...)
		scanned, scanErr := scanAppointmentRow(row)
		if scanErr != nil {
			return scanErr
		}
		appt = scanned
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// GetWithFilter lists appointments matching the filter, ordered by date and
// start time. For a single-date lookup inside a transaction the rows are
// locked (FOR UPDATE) so a concurrent booking for the same day serializes
// against this read.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeTerminal {
		terminal := make([]string, len(domain.TerminalStatuses))
		for i, s := range domain.TerminalStatuses {
			terminal[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": terminal})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	if singleDate {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date ASC, start_time ASC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	var appts []*domain.Appointment
	err = r.retryRead(ctx, func() error {
		rows, qerr := executor.QueryContext(ctx, query, args...)
		if qerr != nil {
			return fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, qerr)
		}
		defer rows.Close()

		scanned, serr := scanAppointments(rows)
		if serr != nil {
			return serr
		}
		appts = scanned
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appts, nil
}

// UpdateTime moves an appointment to a new date, start and duration.
func (r *Repository) UpdateTime(ctx context.Context, id int64, date time.Time, start types.TimeString, durationMinutes int) error {
	return r.update(ctx, "UpdateTime", psqlbuilder.Update("appointments").
		Set("appointment_date", date).
		Set("start_time", start).
		Set("duration_minutes", durationMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// UpdateStatus changes the status of an appointment.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	return r.update(ctx, "UpdateStatus", psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// SetTokenExpiry moves the cancellation token deadline, typically after a
// reschedule.
func (r *Repository) SetTokenExpiry(ctx context.Context, id int64, expiresAt *time.Time) error {
	return r.update(ctx, "SetTokenExpiry", psqlbuilder.Update("appointments").
		Set("token_expires_at", expiresAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// SetExternalEventID stores (or clears, with nil) the mirrored calendar
// event reference.
func (r *Repository) SetExternalEventID(ctx context.Context, id int64, eventID *string) error {
	return r.update(ctx, "SetExternalEventID", psqlbuilder.Update("appointments").
		Set("external_event_id", eventID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// Delete removes an appointment permanently.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *Repository) update(ctx context.Context, op string, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// retryRead reruns a read-only statement on transient connection errors.
// Inside a transaction the statement runs exactly once: retrying would
// silently continue on an aborted transaction.
func (r *Repository) retryRead(ctx context.Context, fn func() error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn()
	}

	var err error
	for attempt := 0; attempt < readRetries; attempt++ {
		err = fn()
		if err == nil || !isTransient(err) {
			return err
		}
	}
	return err
}

func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	// pq class 08: connection exceptions.
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "connection reset")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointmentRow(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime
	var serviceType, status, createdBy string
	var startTime string

	err := row.Scan(
		&appt.ID,
		&appt.PatientName,
		&appt.Email,
		&appt.Phone,
		&appt.Date,
		&startTime,
		&appt.DurationMinutes,
		&serviceType,
		&status,
		&appt.Notes,
		&appt.CancellationToken,
		&appt.TokenExpiresAt,
		&appt.ExternalEventID,
		&createdBy,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan appointment: %v", ErrScanRow, err)
	}

	appt.StartTime = types.TimeString(startTime)
	appt.ServiceType = domain.ServiceType(serviceType)
	appt.Status = domain.AppointmentStatus(status)
	appt.CreatedBy = domain.CreatedBy(createdBy)
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appts := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointmentRow(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return appts, nil
}
