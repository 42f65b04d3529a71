package store

import (
	"context"

	"github.com/Skarbonka1/serwerfinal/internal/domain"
)

// StatisticUpdate carries the optional fields of a partial statistic
// update. A nil field is left untouched; the repository builds the
// write set from the struct instead of concatenating SQL fragments.
type StatisticUpdate struct {
	PeriodType *domain.StatisticPeriod
	Year       *int
	Period     *int
	Quantity   *int64
}

// IsEmpty reports whether the update would change nothing.
func (u StatisticUpdate) IsEmpty() bool {
	return u.PeriodType == nil && u.Year == nil && u.Period == nil && u.Quantity == nil
}

// StatisticStore defines the interface for sales statistic persistence.
type StatisticStore interface {
	// Create saves a new statistic and fills in its store-assigned ID.
	// Returns ErrStatisticExists if the (period type, year, period) key
	// is already present.
	Create(ctx context.Context, stat *domain.Statistic) error

	// List returns all statistics ordered by period type, year and period.
	List(ctx context.Context) ([]*domain.Statistic, error)

	// Update applies a partial update.
	// Returns ErrStatisticNotFound if the statistic does not exist and
	// ErrStatisticExists if the change collides with another period key.
	Update(ctx context.Context, id int64, update StatisticUpdate) (*domain.Statistic, error)

	// Delete removes a statistic.
	// Returns ErrStatisticNotFound if the statistic does not exist.
	Delete(ctx context.Context, id int64) error
}
