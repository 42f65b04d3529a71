package service

import (
	"context"
	"log/slog"

	"github.com/Skarbonka1/serwerfinal/internal/domain"
	"github.com/Skarbonka1/serwerfinal/internal/store"
)

// StatisticService provides sales statistic operations.
type StatisticService interface {
	// Create records a new statistic for a reporting period.
	// Returns store.ErrStatisticExists if the period is already recorded.
	Create(
		ctx context.Context,
		periodType domain.StatisticPeriod,
		year, period int,
		quantity int64,
	) (*domain.Statistic, error)

	// List returns all recorded statistics.
	List(ctx context.Context) ([]*domain.Statistic, error)

	// Update applies a partial update to a statistic.
	Update(ctx context.Context, id int64, update store.StatisticUpdate) (*domain.Statistic, error)

	// Delete removes a statistic.
	Delete(ctx context.Context, id int64) error
}

type statisticServiceImpl struct {
	statStore store.StatisticStore
	logger    *slog.Logger
}

// NewStatisticService creates a StatisticService. It panics if statStore
// is nil.
func NewStatisticService(statStore store.StatisticStore, logger *slog.Logger) StatisticService {
	if statStore == nil {
		panic("statStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &statisticServiceImpl{
		statStore: statStore,
		logger:    logger.With("component", "statistic_service"),
	}
}

func (s *statisticServiceImpl) Create(
	ctx context.Context,
	periodType domain.StatisticPeriod,
	year, period int,
	quantity int64,
) (*domain.Statistic, error) {
	stat, err := domain.NewStatistic(periodType, year, period, quantity)
	if err != nil {
		return nil, newServiceError("create_statistic", "invalid statistic data", err)
	}

	if err := s.statStore.Create(ctx, stat); err != nil {
		return nil, newServiceError("create_statistic", "failed to save statistic", err)
	}

	return stat, nil
}

func (s *statisticServiceImpl) List(ctx context.Context) ([]*domain.Statistic, error) {
	stats, err := s.statStore.List(ctx)
	if err != nil {
		return nil, newServiceError("list_statistics", "failed to list statistics", err)
	}
	return stats, nil
}

func (s *statisticServiceImpl) Update(
	ctx context.Context,
	id int64,
	update store.StatisticUpdate,
) (*domain.Statistic, error) {
	stat, err := s.statStore.Update(ctx, id, update)
	if err != nil {
		return nil, newServiceError("update_statistic", "failed to update statistic", err)
	}
	return stat, nil
}

func (s *statisticServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.statStore.Delete(ctx, id); err != nil {
		return newServiceError("delete_statistic", "failed to delete statistic", err)
	}
	return nil
}
