package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Skarbonka1/serwerfinal/internal/domain"
	"github.com/Skarbonka1/serwerfinal/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface using a
// PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create
// The task ID is assigned by the database identity column.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (title, content_state, creator_id, leader_id, deadline, importance, status, publication_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		task.Title,
		nullableJSON(task.ContentState),
		task.CreatorID,
		task.LeaderID,
		task.Deadline,
		task.Importance,
		task.Status,
		task.PublicationDate,
	).Scan(&task.ID)
	if err != nil {
		s.logger.Error("failed to insert task",
			"creator_id", task.CreatorID,
			"error", err)
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `
		SELECT id, title, content_state, creator_id, leader_id, deadline, importance, status, publication_date
		FROM tasks
		WHERE id = $1
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// Update implements store.TaskStore.Update
// It writes the mutable fields only; status and publication date are
// owned by Publish.
func (s *PostgresTaskStore) Update(ctx context.Context, id int64, update store.TaskUpdate) error {
	query := `
		UPDATE tasks
		SET title = $1, content_state = $2, leader_id = $3, deadline = $4, importance = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(ctx, query,
		update.Title,
		nullableJSON(update.ContentState),
		update.LeaderID,
		update.Deadline,
		update.Importance,
		id,
	)
	if err != nil {
		s.logger.Error("failed to update task", "task_id", id, "error", err)
		return fmt.Errorf("failed to update task: %w", err)
	}

	return requireRow(result, store.ErrTaskNotFound)
}

// UpdateDeadline implements store.TaskStore.UpdateDeadline
func (s *PostgresTaskStore) UpdateDeadline(ctx context.Context, id int64, deadline *time.Time) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET deadline = $1 WHERE id = $2`, deadline, id)
	if err != nil {
		s.logger.Error("failed to update task deadline", "task_id", id, "error", err)
		return fmt.Errorf("failed to update task deadline: %w", err)
	}

	return requireRow(result, store.ErrTaskNotFound)
}

// Publish implements store.TaskStore.Publish
func (s *PostgresTaskStore) Publish(ctx context.Context, id int64, publishedAt time.Time) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET status = $1, publication_date = $2 WHERE id = $3`,
		domain.TaskStatusPublished, publishedAt, id)
	if err != nil {
		s.logger.Error("failed to publish task", "task_id", id, "error", err)
		return fmt.Errorf("failed to publish task: %w", err)
	}

	return requireRow(result, store.ErrTaskNotFound)
}

// GetCalendarView implements store.TaskStore.GetCalendarView
// The visibility filter is part of the query: a user sees published
// tasks they created or are assigned to, and their own drafts. Foreign
// drafts and unrelated published tasks never leave the database.
func (s *PostgresTaskStore) GetCalendarView(ctx context.Context, userID int64) ([]store.CalendarEntry, error) {
	query := `
		SELECT t.id, t.title, t.content_state, t.creator_id, t.leader_id, t.deadline,
		       t.importance, t.status, t.publication_date,
		       c.name AS creator_name,
		       l.name AS leader_name,
		       COALESCE((
		           SELECT json_agg(u.name ORDER BY u.name)
		           FROM task_assignments ta
		           JOIN users u ON u.id = ta.user_id
		           WHERE ta.task_id = t.id
		       ), '[]') AS assigned_user_names
		FROM tasks t
		JOIN users c ON c.id = t.creator_id
		LEFT JOIN users l ON l.id = t.leader_id
		WHERE (t.status = $2 AND (t.creator_id = $1 OR EXISTS (
		          SELECT 1 FROM task_assignments ta
		          WHERE ta.task_id = t.id AND ta.user_id = $1)))
		   OR (t.status = $3 AND t.creator_id = $1)
		ORDER BY t.publication_date DESC
	`

	rows, err := s.db.QueryContext(ctx, query,
		userID, domain.TaskStatusPublished, domain.TaskStatusDraft)
	if err != nil {
		s.logger.Error("failed to query calendar view", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to query calendar view: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]store.CalendarEntry, 0)
	for rows.Next() {
		var (
			entry        store.CalendarEntry
			contentState []byte
			leaderName   sql.NullString
			namesJSON    []byte
		)

		err := rows.Scan(
			&entry.ID,
			&entry.Title,
			&contentState,
			&entry.CreatorID,
			&entry.LeaderID,
			&entry.Deadline,
			&entry.Importance,
			&entry.Status,
			&entry.PublicationDate,
			&entry.CreatorName,
			&leaderName,
			&namesJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calendar row: %w", err)
		}

		entry.ContentState = contentState
		if leaderName.Valid {
			entry.LeaderName = &leaderName.String
		}
		if err := json.Unmarshal(namesJSON, &entry.AssignedUserNames); err != nil {
			return nil, fmt.Errorf("failed to decode assignee names: %w", err)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calendar rows: %w", err)
	}

	return entries, nil
}

// Delete implements store.TaskStore.Delete
// Assignment and comment rows are removed by ON DELETE CASCADE foreign
// keys in the schema, not by application code.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete task", "task_id", id, "error", err)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return requireRow(result, store.ErrTaskNotFound)
}

// scanTask reads one task row.
func scanTask(row *sql.Row) (*domain.Task, error) {
	var (
		task         domain.Task
		contentState []byte
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&contentState,
		&task.CreatorID,
		&task.LeaderID,
		&task.Deadline,
		&task.Importance,
		&task.Status,
		&task.PublicationDate,
	)
	if err != nil {
		return nil, err
	}

	task.ContentState = contentState
	return &task, nil
}

// requireRow maps a zero-rows-affected result to the given sentinel.
func requireRow(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

// nullableJSON maps an empty raw payload to NULL so the jsonb column
// does not reject the empty string.
func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
