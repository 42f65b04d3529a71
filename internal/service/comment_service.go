package service

import (
	"context"
	"log/slog"

	"github.com/Skarbonka1/serwerfinal/internal/domain"
	"github.com/Skarbonka1/serwerfinal/internal/store"
)

// CommentService provides task comment operations.
type CommentService interface {
	// Add attaches a comment to a task.
	// Returns store.ErrTaskNotFound if the task does not exist.
	Add(ctx context.Context, taskID, authorID int64, body string) (*domain.Comment, error)

	// ListByTask returns a task's comments, oldest first.
	ListByTask(ctx context.Context, taskID int64) ([]*domain.Comment, error)

	// Delete removes a comment.
	Delete(ctx context.Context, id int64) error
}

type commentServiceImpl struct {
	commentStore store.CommentStore
	logger       *slog.Logger
}

// NewCommentService creates a CommentService. It panics if commentStore
// is nil.
func NewCommentService(commentStore store.CommentStore, logger *slog.Logger) CommentService {
	if commentStore == nil {
		panic("commentStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &commentServiceImpl{
		commentStore: commentStore,
		logger:       logger.With("component", "comment_service"),
	}
}

func (s *commentServiceImpl) Add(
	ctx context.Context,
	taskID, authorID int64,
	body string,
) (*domain.Comment, error) {
	comment, err := domain.NewComment(taskID, authorID, body)
	if err != nil {
		return nil, newServiceError("add_comment", "invalid comment data", err)
	}

	if err := s.commentStore.Create(ctx, comment); err != nil {
		return nil, newServiceError("add_comment", "failed to save comment", err)
	}

	return comment, nil
}

func (s *commentServiceImpl) ListByTask(
	ctx context.Context,
	taskID int64,
) ([]*domain.Comment, error) {
	comments, err := s.commentStore.ListByTask(ctx, taskID)
	if err != nil {
		return nil, newServiceError("list_comments", "failed to list comments", err)
	}
	return comments, nil
}

func (s *commentServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.commentStore.Delete(ctx, id); err != nil {
		return newServiceError("delete_comment", "failed to delete comment", err)
	}
	return nil
}
