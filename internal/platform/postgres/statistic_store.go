package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Skarbonka1/serwerfinal/internal/domain"
	"github.com/Skarbonka1/serwerfinal/internal/store"
)

// PostgresStatisticStore implements the store.StatisticStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStatisticStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStatisticStore creates a new PostgreSQL implementation of
// the StatisticStore interface.
func NewPostgresStatisticStore(db store.DBTX, logger *slog.Logger) *PostgresStatisticStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatisticStore{
		db:     db,
		logger: logger.With(slog.String("component", "statistic_store")),
	}
}

// Ensure PostgresStatisticStore implements store.StatisticStore interface
var _ store.StatisticStore = (*PostgresStatisticStore)(nil)

// Create implements store.StatisticStore.Create
func (s *PostgresStatisticStore) Create(ctx context.Context, stat *domain.Statistic) error {
	if err := stat.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO statistics (period_type, year, period, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		stat.PeriodType,
		stat.Year,
		stat.Period,
		stat.Quantity,
	).Scan(&stat.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrStatisticExists
		}
		s.logger.Error("failed to insert statistic",
			"period_type", stat.PeriodType,
			"year", stat.Year,
			"period", stat.Period,
			"error", err)
		return fmt.Errorf("failed to insert statistic: %w", err)
	}

	return nil
}

// List implements store.StatisticStore.List
func (s *PostgresStatisticStore) List(ctx context.Context) ([]*domain.Statistic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, period_type, year, period, quantity
		 FROM statistics
		 ORDER BY period_type, year, period`)
	if err != nil {
		s.logger.Error("failed to query statistics", "error", err)
		return nil, fmt.Errorf("failed to query statistics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	stats := make([]*domain.Statistic, 0)
	for rows.Next() {
		var stat domain.Statistic
		err := rows.Scan(&stat.ID, &stat.PeriodType, &stat.Year, &stat.Period, &stat.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statistic row: %w", err)
		}
		stats = append(stats, &stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statistic rows: %w", err)
	}

	return stats, nil
}

// Update implements store.StatisticStore.Update
// The write set is built from the update struct: a nil field is left
// untouched. No SQL fragments are pieced together from request data.
func (s *PostgresStatisticStore) Update(ctx context.Context, id int64, update store.StatisticUpdate) (*domain.Statistic, error) {
	if update.IsEmpty() {
		return s.getByID(ctx, id)
	}

	var (
		assignments []string
		args        []any
	)

	addField := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.PeriodType != nil {
		addField("period_type", *update.PeriodType)
	}
	if update.Year != nil {
		addField("year", *update.Year)
	}
	if update.Period != nil {
		addField("period", *update.Period)
	}
	if update.Quantity != nil {
		addField("quantity", *update.Quantity)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE statistics SET %s WHERE id = $%d
		 RETURNING id, period_type, year, period, quantity`,
		strings.Join(assignments, ", "), len(args))

	var stat domain.Statistic
	err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&stat.ID, &stat.PeriodType, &stat.Year, &stat.Period, &stat.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStatisticNotFound
		}
		if isUniqueViolation(err) {
			return nil, store.ErrStatisticExists
		}
		s.logger.Error("failed to update statistic", "statistic_id", id, "error", err)
		return nil, fmt.Errorf("failed to update statistic: %w", err)
	}

	return &stat, nil
}

// Delete implements store.StatisticStore.Delete
func (s *PostgresStatisticStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM statistics WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete statistic", "statistic_id", id, "error", err)
		return fmt.Errorf("failed to delete statistic: %w", err)
	}

	return requireRow(result, store.ErrStatisticNotFound)
}

func (s *PostgresStatisticStore) getByID(ctx context.Context, id int64) (*domain.Statistic, error) {
	var stat domain.Statistic
	err := s.db.QueryRowContext(ctx,
		`SELECT id, period_type, year, period, quantity FROM statistics WHERE id = $1`, id).
		Scan(&stat.ID, &stat.PeriodType, &stat.Year, &stat.Period, &stat.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStatisticNotFound
		}
		return nil, fmt.Errorf("failed to get statistic: %w", err)
	}

	return &stat, nil
}
