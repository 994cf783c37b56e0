package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	"github.com/matutevip/ginecoschedule-sub001/pkg/dbmetrics"
	"github.com/matutevip/ginecoschedule-sub001/pkg/psqlbuilder"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

// Repository persists the schedule configuration: the singleton weekly
// pattern plus blocked days, occasional workdays and vacation periods.
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetConfig loads the singleton schedule row.
func (r *Repository) GetConfig(ctx context.Context) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"workdays",
		"open_time",
		"close_time",
		"extended_pap_duration",
		"updated_at",
	).
		From("schedule_config").
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.ScheduleConfig
	var workdayNames []string
	var openTime, closeTime string
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		pq.Array(&workdayNames),
		&openTime,
		&closeTime,
		&cfg.ExtendedPapDuration,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - scan config: %v", ErrScanRow, err)
	}

	cfg.Workdays = make([]domain.Weekday, 0, len(workdayNames))
	for _, name := range workdayNames {
		day, perr := domain.ParseWeekday(name)
		if perr != nil {
			// Skip rows written before the day-name normalization; they
			// cannot match any weekday check anyway.
			continue
		}
		cfg.Workdays = append(cfg.Workdays, day)
	}
	cfg.OpenTime = types.TimeString(openTime)
	cfg.CloseTime = types.TimeString(closeTime)
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// UpsertConfig writes the singleton schedule row, creating it on first use.
func (r *Repository) UpsertConfig(ctx context.Context, cfg *domain.ScheduleConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	names := make([]string, len(cfg.Workdays))
	for i, d := range cfg.Workdays {
		names[i] = d.String()
	}

	query, args, err := psqlbuilder.Insert("schedule_config").
		Columns("id", "workdays", "open_time", "close_time", "extended_pap_duration", "updated_at").
		Values(1, pq.Array(names), cfg.OpenTime.String(), cfg.CloseTime.String(), cfg.ExtendedPapDuration, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (id) DO UPDATE SET workdays = EXCLUDED.workdays, open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time, extended_pap_duration = EXCLUDED.extended_pap_duration, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertConfig - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertConfig - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// BlockedDayOnDate returns the blocked-day row covering the date, or nil
// when the date is not blocked.
func (r *Repository) BlockedDayOnDate(ctx context.Context, date time.Time) (*domain.BlockedDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "blocked_date", "reason", "created_at").
		From("blocked_days").
		Where(squirrel.Eq{"blocked_date": domain.DayOf(date)}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: BlockedDayOnDate - build select query: %v", ErrBuildQuery, err)
	}

	var day domain.BlockedDay
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &day.Date, &day.Reason, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: BlockedDayOnDate - scan blocked day: %v", ErrScanRow, err)
	}
	day.CreatedAt = createdAt.Time
	return &day, nil
}

// ListBlockedDays lists all blocked days, newest first.
func (r *Repository) ListBlockedDays(ctx context.Context) ([]*domain.BlockedDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "blocked_date", "reason", "created_at").
		From("blocked_days").
		OrderBy("blocked_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.BlockedDay, 0)
	for rows.Next() {
		var day domain.BlockedDay
		var createdAt sql.NullTime
		if err := rows.Scan(&day.ID, &day.Date, &day.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedDays - scan row: %v", ErrScanRow, err)
		}
		day.CreatedAt = createdAt.Time
		days = append(days, &day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDays - rows error: %v", ErrScanRow, err)
	}
	return days, nil
}

// CreateBlockedDay inserts a blocked day.
func (r *Repository) CreateBlockedDay(ctx context.Context, day *domain.BlockedDay) (*domain.BlockedDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_days").
		Columns("blocked_date", "reason").
		Values(domain.DayOf(day.Date), day.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDay - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDay - execute insert: %v", ErrExecQuery, err)
	}
	day.CreatedAt = createdAt.Time
	return day, nil
}

// DeleteBlockedDay removes a blocked day by ID.
func (r *Repository) DeleteBlockedDay(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_days").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDay - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDay - execute delete: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDay - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBlockedDayNotFound
	}
	return nil
}

// OccasionalWorkdayOnDate returns the occasional-workday row for the date,
// or nil when none exists.
func (r *Repository) OccasionalWorkdayOnDate(ctx context.Context, date time.Time) (*domain.OccasionalWorkday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "workday_date", "open_time", "close_time").
		From("occasional_workdays").
		Where(squirrel.Eq{"workday_date": domain.DayOf(date)}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: OccasionalWorkdayOnDate - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	occ, err := scanOccasional(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: OccasionalWorkdayOnDate - scan row: %v", ErrScanRow, err)
	}
	return occ, nil
}

// ListOccasionalWorkdays lists every occasional workday, oldest first.
func (r *Repository) ListOccasionalWorkdays(ctx context.Context) ([]*domain.OccasionalWorkday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "workday_date", "open_time", "close_time").
		From("occasional_workdays").
		OrderBy("workday_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccasionalWorkdays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccasionalWorkdays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.OccasionalWorkday, 0)
	for rows.Next() {
		occ, serr := scanOccasional(rows)
		if serr != nil {
			return nil, fmt.Errorf("%w: ListOccasionalWorkdays - scan row: %v", ErrScanRow, serr)
		}
		days = append(days, occ)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOccasionalWorkdays - rows error: %v", ErrScanRow, err)
	}
	return days, nil
}

// ReplaceOccasionalWorkdays swaps the full occasional-workday list. Runs
// inside the caller's transaction when one is in the context.
func (r *Repository) ReplaceOccasionalWorkdays(ctx context.Context, days []*domain.OccasionalWorkday) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "DELETE FROM occasional_workdays"); err != nil {
		return fmt.Errorf("%w: ReplaceOccasionalWorkdays - clear table: %v", ErrExecQuery, err)
	}
	if len(days) == 0 {
		return nil
	}

	builder := psqlbuilder.Insert("occasional_workdays").
		Columns("workday_date", "open_time", "close_time")
	for _, d := range days {
		var open, close interface{}
		if d.OpenTime != nil {
			open = d.OpenTime.String()
		}
		if d.CloseTime != nil {
			close = d.CloseTime.String()
		}
		builder = builder.Values(domain.DayOf(d.Date), open, close)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOccasionalWorkdays - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceOccasionalWorkdays - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// VacationCovering returns the vacation period containing the date, or nil.
func (r *Repository) VacationCovering(ctx context.Context, date time.Time) (*domain.VacationPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day := domain.DayOf(date)
	query, args, err := psqlbuilder.Select("id", "start_date", "end_date", "reason").
		From("vacation_periods").
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.GtOrEq{"end_date": day}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: VacationCovering - build select query: %v", ErrBuildQuery, err)
	}

	var v domain.VacationPeriod
	err = executor.QueryRowContext(ctx, query, args...).Scan(&v.ID, &v.StartDate, &v.EndDate, &v.Reason)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: VacationCovering - scan row: %v", ErrScanRow, err)
	}
	return &v, nil
}

// ListVacationPeriods lists every vacation range, oldest first.
func (r *Repository) ListVacationPeriods(ctx context.Context) ([]*domain.VacationPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "start_date", "end_date", "reason").
		From("vacation_periods").
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListVacationPeriods - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListVacationPeriods - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	periods := make([]*domain.VacationPeriod, 0)
	for rows.Next() {
		var v domain.VacationPeriod
		if err := rows.Scan(&v.ID, &v.StartDate, &v.EndDate, &v.Reason); err != nil {
			return nil, fmt.Errorf("%w: ListVacationPeriods - scan row: %v", ErrScanRow, err)
		}
		periods = append(periods, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListVacationPeriods - rows error: %v", ErrScanRow, err)
	}
	return periods, nil
}

// ReplaceVacationPeriods swaps the full vacation list.
func (r *Repository) ReplaceVacationPeriods(ctx context.Context, periods []*domain.VacationPeriod) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "DELETE FROM vacation_periods"); err != nil {
		return fmt.Errorf("%w: ReplaceVacationPeriods - clear table: %v", ErrExecQuery, err)
	}
	if len(periods) == 0 {
		return nil
	}

	builder := psqlbuilder.Insert("vacation_periods").
		Columns("start_date", "end_date", "reason")
	for _, p := range periods {
		builder = builder.Values(domain.DayOf(p.StartDate), domain.DayOf(p.EndDate), p.Reason)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceVacationPeriods - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceVacationPeriods - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOccasional(row rowScanner) (*domain.OccasionalWorkday, error) {
	var occ domain.OccasionalWorkday
	var open, close sql.NullString

	if err := row.Scan(&occ.ID, &occ.Date, &open, &close); err != nil {
		return nil, err
	}
	if open.Valid {
		ts := types.TimeString(open.String)
		occ.OpenTime = &ts
	}
	if close.Valid {
		ts := types.TimeString(close.String)
		occ.CloseTime = &ts
	}
	return &occ, nil
}
