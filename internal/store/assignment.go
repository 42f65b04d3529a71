package store

import (
	"context"
	"database/sql"
)

// AssignmentStore owns the task-to-user many-to-many relation.
type AssignmentStore interface {
	// ReplaceAll atomically replaces the assignment set of a task:
	// it deletes every existing (taskID, *) row and inserts one row per
	// user ID. An empty set is legal and leaves the task unassigned.
	// Repeating the call with the same set is idempotent.
	//
	// This method MUST run inside the caller's transaction (use WithTx)
	// so a partially replaced set is never visible.
	ReplaceAll(ctx context.Context, taskID int64, userIDs []int64) error

	// ListUserIDs returns the IDs of all users assigned to the task.
	ListUserIDs(ctx context.Context, taskID int64) ([]int64, error)

	// WithTx returns an AssignmentStore bound to the given transaction.
	WithTx(tx *sql.Tx) AssignmentStore
}
