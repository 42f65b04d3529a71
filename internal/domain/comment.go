package domain

import (
	"errors"
	"time"
)

// Common validation errors for Comment.
var (
	ErrEmptyCommentBody   = errors.New("comment body cannot be empty")
	ErrCommentMissingTask = errors.New("comment task ID is required")
)

// Comment is a short note left by a user on a task.
type Comment struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NewComment creates a new comment on the given task.
func NewComment(taskID, authorID int64, body string) (*Comment, error) {
	comment := &Comment{
		TaskID:    taskID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	if err := comment.Validate(); err != nil {
		return nil, err
	}

	return comment, nil
}

// Validate checks if the Comment has valid data.
func (c *Comment) Validate() error {
	if c.TaskID <= 0 {
		return ErrCommentMissingTask
	}

	if c.Body == "" {
		return ErrEmptyCommentBody
	}

	return nil
}
