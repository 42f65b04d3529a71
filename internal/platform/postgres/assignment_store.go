package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Skarbonka1/serwerfinal/internal/store"
)

// PostgresAssignmentStore implements the store.AssignmentStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAssignmentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAssignmentStore creates a new PostgreSQL implementation of
// the AssignmentStore interface.
func NewPostgresAssignmentStore(db store.DBTX, logger *slog.Logger) *PostgresAssignmentStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAssignmentStore{
		db:     db,
		logger: logger.With(slog.String("component", "assignment_store")),
	}
}

// Ensure PostgresAssignmentStore implements store.AssignmentStore interface
var _ store.AssignmentStore = (*PostgresAssignmentStore)(nil)

// WithTx implements store.AssignmentStore.WithTx
func (s *PostgresAssignmentStore) WithTx(tx *sql.Tx) store.AssignmentStore {
	return &PostgresAssignmentStore{
		db:     tx,
		logger: s.logger,
	}
}

// ReplaceAll implements store.AssignmentStore.ReplaceAll
// It runs delete-then-insert against whatever DBTX it is bound to; the
// caller is responsible for wrapping it in a transaction so readers
// never observe the intermediate empty set.
func (s *PostgresAssignmentStore) ReplaceAll(ctx context.Context, taskID int64, userIDs []int64) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM task_assignments WHERE task_id = $1`, taskID); err != nil {
		s.logger.Error("failed to clear assignments", "task_id", taskID, "error", err)
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	for _, userID := range userIDs {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO task_assignments (task_id, user_id) VALUES ($1, $2)
			 ON CONFLICT (task_id, user_id) DO NOTHING`,
			taskID, userID)
		if err != nil {
			s.logger.Error("failed to insert assignment",
				"task_id", taskID,
				"user_id", userID,
				"error", err)
			return fmt.Errorf("failed to insert assignment for user %d: %w", userID, err)
		}
	}

	return nil
}

// ListUserIDs implements store.AssignmentStore.ListUserIDs
func (s *PostgresAssignmentStore) ListUserIDs(ctx context.Context, taskID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id FROM task_assignments WHERE task_id = $1 ORDER BY user_id`, taskID)
	if err != nil {
		s.logger.Error("failed to query assignments", "task_id", taskID, "error", err)
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var userIDs []int64
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		userIDs = append(userIDs, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", err)
	}

	return userIDs, nil
}
