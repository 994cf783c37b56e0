// Package schedule owns the working-schedule configuration: the weekly
// pattern, blocked days, occasional workdays and vacation ranges, plus the
// per-date classification built from them.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matutevip/ginecoschedule-sub001/internal/domain"
	storage "github.com/matutevip/ginecoschedule-sub001/internal/infra/storage/schedule"
	"github.com/matutevip/ginecoschedule-sub001/pkg/types"
)

// Service exposes schedule reads and administrative updates.
type Service struct {
	repo ScheduleRepo
	tx   TransactionManager
	loc  *time.Location
	log  Logger
}

func NewService(repo ScheduleRepo, tx TransactionManager, loc *time.Location, log Logger) *Service {
	return &Service{repo: repo, tx: tx, loc: loc, log: log}
}

// defaultConfig covers a fresh database with no schedule row yet.
func defaultConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ID: 1,
		Workdays: []domain.Weekday{
			domain.Monday, domain.Tuesday, domain.Wednesday,
			domain.Thursday, domain.Friday,
		},
		OpenTime:  types.TimeString("09:00"),
		CloseTime: types.TimeString("12:00"),
	}
}

func (s *Service) GetConfig(ctx context.Context) (*domain.ScheduleConfig, error) {
	cfg, err := s.repo.GetConfig(ctx)
	if errors.Is(err, storage.ErrConfigNotFound) {
		return defaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig: %v", ErrInternal, err)
	}
	return cfg, nil
}

// FullConfig bundles the weekly pattern with its date-level exceptions for
// the admin panel.
type FullConfig struct {
	Config             *domain.ScheduleConfig
	OccasionalWorkdays []*domain.OccasionalWorkday
	VacationPeriods    []*domain.VacationPeriod
}

func (s *Service) GetFullConfig(ctx context.Context) (*FullConfig, error) {
	cfg, err := s.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	occasional, err := s.repo.ListOccasionalWorkdays(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: GetFullConfig: %v", ErrInternal, err)
	}
	vacations, err := s.repo.ListVacationPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: GetFullConfig: %v", ErrInternal, err)
	}
	return &FullConfig{
		Config:             cfg,
		OccasionalWorkdays: occasional,
		VacationPeriods:    vacations,
	}, nil
}

// UpdateConfig replaces the schedule configuration atomically. Occasional
// workdays and vacation periods are replaced wholesale; nil leaves a set
// untouched.
func (s *Service) UpdateConfig(ctx context.Context, cfg *domain.ScheduleConfig, occasional []*domain.OccasionalWorkday, vacations []*domain.VacationPeriod) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	for _, day := range occasional {
		if err := validateOccasional(day); err != nil {
			return err
		}
	}
	for _, v := range vacations {
		if v.EndDate.Before(v.StartDate) {
			return fmt.Errorf("%w: vacation ends before it starts", ErrInvalidConfig)
		}
	}

	err := s.tx.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.repo.UpsertConfig(ctx, cfg); err != nil {
			return err
		}
		if occasional != nil {
			if err := s.repo.ReplaceOccasionalWorkdays(ctx, occasional); err != nil {
				return err
			}
		}
		if vacations != nil {
			if err := s.repo.ReplaceVacationPeriods(ctx, vacations); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: UpdateConfig: %v", ErrInternal, err)
	}

	s.log.Info("schedule: configuration updated, %d workdays, %s-%s",
		len(cfg.Workdays), cfg.OpenTime, cfg.CloseTime)
	return nil
}

func (s *Service) ListBlockedDays(ctx context.Context) ([]*domain.BlockedDay, error) {
	days, err := s.repo.ListBlockedDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDays: %v", ErrInternal, err)
	}
	return days, nil
}

func (s *Service) CreateBlockedDay(ctx context.Context, day *domain.BlockedDay) (*domain.BlockedDay, error) {
	day.Date = domain.DayOf(day.Date.In(s.loc))
	created, err := s.repo.CreateBlockedDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDay: %v", ErrInternal, err)
	}
	return created, nil
}

func (s *Service) DeleteBlockedDay(ctx context.Context, id int64) error {
	err := s.repo.DeleteBlockedDay(ctx, id)
	if errors.Is(err, storage.ErrBlockedDayNotFound) {
		return fmt.Errorf("%w: id %d", ErrBlockedDayNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDay: %v", ErrInternal, err)
	}
	return nil
}

// ResolveDay classifies one date and returns the applicable configuration
// alongside. Every availability decision starts here.
func (s *Service) ResolveDay(ctx context.Context, date time.Time) (domain.DayType, *domain.ScheduleConfig, error) {
	day := domain.DayOf(date.In(s.loc))

	cfg, err := s.GetConfig(ctx)
	if err != nil {
		return domain.DayType{}, nil, err
	}
	blocked, err := s.repo.BlockedDayOnDate(ctx, day)
	if err != nil {
		return domain.DayType{}, nil, fmt.Errorf("%w: ResolveDay: %v", ErrInternal, err)
	}
	vacation, err := s.repo.VacationCovering(ctx, day)
	if err != nil {
		return domain.DayType{}, nil, fmt.Errorf("%w: ResolveDay: %v", ErrInternal, err)
	}
	occasional, err := s.repo.OccasionalWorkdayOnDate(ctx, day)
	if err != nil {
		return domain.DayType{}, nil, fmt.Errorf("%w: ResolveDay: %v", ErrInternal, err)
	}

	return domain.ResolveDayType(day, cfg, blocked, vacation, occasional), cfg, nil
}

func validateConfig(cfg *domain.ScheduleConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := cfg.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidConfig, err)
	}
	if err := cfg.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrInvalidConfig, err)
	}
	if !cfg.OpenTime.IsBefore(cfg.CloseTime) {
		return fmt.Errorf("%w: open time %s is not before close time %s",
			ErrInvalidConfig, cfg.OpenTime, cfg.CloseTime)
	}
	return nil
}

func validateOccasional(day *domain.OccasionalWorkday) error {
	if (day.OpenTime == nil) != (day.CloseTime == nil) {
		return fmt.Errorf("%w: occasional workday needs both open and close or neither", ErrInvalidConfig)
	}
	if day.OpenTime != nil {
		if err := day.OpenTime.Validate(); err != nil {
			return fmt.Errorf("%w: occasional open time: %v", ErrInvalidConfig, err)
		}
		if err := day.CloseTime.Validate(); err != nil {
			return fmt.Errorf("%w: occasional close time: %v", ErrInvalidConfig, err)
		}
		if !day.OpenTime.IsBefore(*day.CloseTime) {
			return fmt.Errorf("%w: occasional open %s is not before close %s",
				ErrInvalidConfig, *day.OpenTime, *day.CloseTime)
		}
	}
	return nil
}
