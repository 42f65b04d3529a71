package store

import (
	"context"

	"github.com/Skarbonka1/serwerfinal/internal/domain"
)

// CommentStore defines the interface for comment data persistence.
// Comments cascade-delete with their task at the database level.
type CommentStore interface {
	// Create saves a new comment and fills in its store-assigned ID.
	Create(ctx context.Context, comment *domain.Comment) error

	// ListByTask returns the comments of a task ordered by creation time.
	ListByTask(ctx context.Context, taskID int64) ([]*domain.Comment, error)

	// Delete removes a comment.
	// Returns ErrCommentNotFound if the comment does not exist.
	Delete(ctx context.Context, id int64) error
}
