package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/Skarbonka1/serwerfinal/internal/domain"
	"github.com/Skarbonka1/serwerfinal/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
type MockTaskStore struct {
	// Custom behavior functions
	CreateFn          func(ctx context.Context, task *domain.Task) error
	GetByIDFn         func(ctx context.Context, id int64) (*domain.Task, error)
	UpdateFn          func(ctx context.Context, id int64, update store.TaskUpdate) error
	UpdateDeadlineFn  func(ctx context.Context, id int64, deadline *time.Time) error
	PublishFn         func(ctx context.Context, id int64, publishedAt time.Time) error
	GetCalendarViewFn func(ctx context.Context, userID int64) ([]store.CalendarEntry, error)
	DeleteFn          func(ctx context.Context, id int64) error

	// Default response values
	Task    *domain.Task
	Entries []store.CalendarEntry
	Err     error

	// Call tracking for verification
	CreateCalls   int
	UpdateCalls   int
	PublishCalls  int
	DeleteCalls   int
	LastPublishID int64
	LastUpdate    store.TaskUpdate
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.CreateCalls++
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return m.Err
}

func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Task, m.Err
}

func (m *MockTaskStore) Update(ctx context.Context, id int64, update store.TaskUpdate) error {
	m.UpdateCalls++
	m.LastUpdate = update
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}
	return m.Err
}

func (m *MockTaskStore) UpdateDeadline(ctx context.Context, id int64, deadline *time.Time) error {
	if m.UpdateDeadlineFn != nil {
		return m.UpdateDeadlineFn(ctx, id, deadline)
	}
	return m.Err
}

func (m *MockTaskStore) Publish(ctx context.Context, id int64, publishedAt time.Time) error {
	m.PublishCalls++
	m.LastPublishID = id
	if m.PublishFn != nil {
		return m.PublishFn(ctx, id, publishedAt)
	}
	return m.Err
}

func (m *MockTaskStore) GetCalendarView(
	ctx context.Context,
	userID int64,
) ([]store.CalendarEntry, error) {
	if m.GetCalendarViewFn != nil {
		return m.GetCalendarViewFn(ctx, userID)
	}
	return m.Entries, m.Err
}

func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	m.DeleteCalls++
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

// WithTx returns the mock itself: transactional scoping is a concern of
// the real store, not of the behavior under test.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
