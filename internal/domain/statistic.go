package domain

import "errors"

// StatisticPeriod distinguishes monthly from weekly sales statistics.
type StatisticPeriod string

// Possible statistic period types.
const (
	StatisticPeriodMonth StatisticPeriod = "month"
	StatisticPeriodWeek  StatisticPeriod = "week"
)

// Common validation errors for Statistic.
var (
	ErrInvalidStatisticPeriod = errors.New("invalid statistic period type")
	ErrInvalidStatisticYear   = errors.New("statistic year must be positive")
	ErrInvalidStatisticIndex  = errors.New("statistic period index out of range")
)

// Statistic records the sales quantity for one reporting period.
// The (PeriodType, Year, Period) triple is unique: a month is 1-12,
// an ISO week is 1-53.
type Statistic struct {
	ID         int64           `json:"id"`
	PeriodType StatisticPeriod `json:"period_type"`
	Year       int             `json:"year"`
	Period     int             `json:"period"`
	Quantity   int64           `json:"quantity"`
}

// NewStatistic creates a statistic entry after validating the period key.
func NewStatistic(periodType StatisticPeriod, year, period int, quantity int64) (*Statistic, error) {
	stat := &Statistic{
		PeriodType: periodType,
		Year:       year,
		Period:     period,
		Quantity:   quantity,
	}

	if err := stat.Validate(); err != nil {
		return nil, err
	}

	return stat, nil
}

// Validate checks if the Statistic has valid data.
func (s *Statistic) Validate() error {
	switch s.PeriodType {
	case StatisticPeriodMonth:
		if s.Period < 1 || s.Period > 12 {
			return ErrInvalidStatisticIndex
		}
	case StatisticPeriodWeek:
		if s.Period < 1 || s.Period > 53 {
			return ErrInvalidStatisticIndex
		}
	default:
		return ErrInvalidStatisticPeriod
	}

	if s.Year <= 0 {
		return ErrInvalidStatisticYear
	}

	return nil
}
