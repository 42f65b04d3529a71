package mocks

import (
	"context"
	"database/sql"

	"github.com/Skarbonka1/serwerfinal/internal/store"
)

// MockAssignmentStore implements store.AssignmentStore for testing.
type MockAssignmentStore struct {
	// Custom behavior functions
	ReplaceAllFn  func(ctx context.Context, taskID int64, userIDs []int64) error
	ListUserIDsFn func(ctx context.Context, taskID int64) ([]int64, error)

	// Default response values
	UserIDs []int64
	Err     error

	// Call tracking for verification
	ReplaceAllCalls int
	LastTaskID      int64
	LastUserIDs     []int64
}

var _ store.AssignmentStore = (*MockAssignmentStore)(nil)

func (m *MockAssignmentStore) ReplaceAll(ctx context.Context, taskID int64, userIDs []int64) error {
	m.ReplaceAllCalls++
	m.LastTaskID = taskID
	m.LastUserIDs = userIDs
	if m.ReplaceAllFn != nil {
		return m.ReplaceAllFn(ctx, taskID, userIDs)
	}
	return m.Err
}

func (m *MockAssignmentStore) ListUserIDs(ctx context.Context, taskID int64) ([]int64, error) {
	if m.ListUserIDsFn != nil {
		return m.ListUserIDsFn(ctx, taskID)
	}
	return m.UserIDs, m.Err
}

func (m *MockAssignmentStore) WithTx(tx *sql.Tx) store.AssignmentStore {
	return m
}
