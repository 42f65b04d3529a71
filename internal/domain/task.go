package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Possible task status values. The published literal is "w toku" for
// compatibility with the data written by earlier revisions of this
// service; clients match on the exact string.
const (
	TaskStatusDraft     TaskStatus = "draft"
	TaskStatusPublished TaskStatus = "w toku"
)

// DefaultTaskTitle is used when a draft is created without a title.
const DefaultTaskTitle = "Nowe zadanie"

// Common validation errors for Task.
var (
	ErrTaskMissingCreator = errors.New("task creator ID is required")
	ErrInvalidTaskStatus  = errors.New("invalid task status")
)

// Task represents a unit of work created by a user, optionally assigned
// to other users. ContentState is an opaque serialized editor payload;
// it is stored and returned verbatim and never interpreted here.
type Task struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	ContentState    json.RawMessage `json:"content_state"`
	CreatorID       int64           `json:"creator_id"`
	LeaderID        *int64          `json:"leader_id"`
	Deadline        *time.Time      `json:"deadline"`
	Importance      string          `json:"importance"`
	Status          TaskStatus      `json:"status"`
	PublicationDate time.Time       `json:"publication_date"`
}

// NewDraft creates a new draft task. The title falls back to
// DefaultTaskTitle when empty and the publication date is set to the
// creation time. Returns an error if validation fails.
func NewDraft(
	title string,
	contentState json.RawMessage,
	creatorID int64,
	leaderID *int64,
	deadline *time.Time,
	importance string,
) (*Task, error) {
	if title == "" {
		title = DefaultTaskTitle
	}

	task := &Task{
		Title:           title,
		ContentState:    contentState,
		CreatorID:       creatorID,
		LeaderID:        leaderID,
		Deadline:        deadline,
		Importance:      importance,
		Status:          TaskStatusDraft,
		PublicationDate: time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.CreatorID <= 0 {
		return ErrTaskMissingCreator
	}

	if !isValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	return nil
}

// Publish transitions the task to the published state and stamps the
// publication date. The transition is one-way: there is no operation
// that moves a published task back to draft.
func (t *Task) Publish(now time.Time) {
	t.Status = TaskStatusPublished
	t.PublicationDate = now.UTC()
}

// IsPublished reports whether the task has left the draft state.
func (t *Task) IsPublished() bool {
	return t.Status == TaskStatusPublished
}

// isValidTaskStatus checks if the given status is a valid TaskStatus.
func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusDraft, TaskStatusPublished:
		return true
	default:
		return false
	}
}
