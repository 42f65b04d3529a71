package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Skarbonka1/serwerfinal/internal/domain"
)

// TaskUpdate carries the mutable task fields for a full update.
// Status and publication date are deliberately absent: the lifecycle
// controller owns those through Publish.
type TaskUpdate struct {
	Title        string
	ContentState json.RawMessage
	LeaderID     *int64
	Deadline     *time.Time
	Importance   string
}

// CalendarEntry is a task enriched with the display names the calendar
// view needs: the creator, the optional leader and all assignees.
type CalendarEntry struct {
	domain.Task
	CreatorName       string   `json:"creator_name"`
	LeaderName        *string  `json:"leader_name,omitempty"`
	AssignedUserNames []string `json:"assigned_user_names"`
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task and fills in its store-assigned ID.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update modifies the mutable fields of an existing task. It never
	// touches status or publication date.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id int64, update TaskUpdate) error

	// UpdateDeadline sets or clears (nil) the task deadline.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateDeadline(ctx context.Context, id int64, deadline *time.Time) error

	// Publish flips the task to the published state and stamps the
	// publication date. Returns ErrTaskNotFound if the task does not exist.
	Publish(ctx context.Context, id int64, publishedAt time.Time) error

	// GetCalendarView returns the tasks visible to the given user:
	// published tasks the user created or is assigned to, plus the
	// user's own drafts. Ordered by publication date descending.
	GetCalendarView(ctx context.Context, userID int64) ([]CalendarEntry, error)

	// Delete removes the task row. Assignment rows cascade at the
	// database level, not in application code.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a TaskStore bound to the given transaction so that
	// multiple operations can run atomically. The transaction is created
	// and managed by the caller (typically a service via Transactor).
	WithTx(tx *sql.Tx) TaskStore
}
