package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Skarbonka1/serwerfinal/internal/domain"
	"github.com/Skarbonka1/serwerfinal/internal/events"
	"github.com/Skarbonka1/serwerfinal/internal/store"
)

// publishNotifyTimeout bounds the detached notification fan-out that
// follows a committed publish.
const publishNotifyTimeout = 30 * time.Second

// CreateTaskInput carries everything needed to create a draft task.
// An empty title falls back to the default draft title.
type CreateTaskInput struct {
	Title           string
	ContentState    json.RawMessage
	CreatorID       int64
	LeaderID        *int64
	Deadline        *time.Time
	Importance      string
	AssignedUserIDs []int64
}

// UpdateTaskInput carries the mutable task fields for a full update.
// The assignment set is always replaced wholesale: a nil or empty slice
// leaves the task unassigned.
type UpdateTaskInput struct {
	Title           string
	ContentState    json.RawMessage
	LeaderID        *int64
	Deadline        *time.Time
	Importance      string
	AssignedUserIDs []int64
}

// TaskService owns the task lifecycle: drafts are created and edited
// freely, publication is a one-way transition that makes the task visible
// to its assignees and triggers the push notification fan-out.
type TaskService interface {
	// CreateDraft creates a task in the draft state together with its
	// assignment set, atomically.
	CreateDraft(ctx context.Context, input CreateTaskInput) (*domain.Task, error)

	// Get retrieves a single task by ID.
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// Update replaces the mutable fields and the assignment set of a
	// task. It never changes the task's status or publication date.
	Update(ctx context.Context, id int64, input UpdateTaskInput) (*domain.Task, error)

	// UpdateDeadline sets (or clears, when nil) the task deadline
	// without touching any other field.
	UpdateDeadline(ctx context.Context, id int64, deadline *time.Time) error

	// Publish flips the task to the published state, stamps a fresh
	// publication date and notifies the assignees. The notification is
	// best effort: once the transition committed, Publish succeeds even
	// if no notification can be delivered.
	Publish(ctx context.Context, id int64) (*domain.Task, error)

	// Calendar returns the tasks visible to the given user, newest
	// publication first.
	Calendar(ctx context.Context, userID int64) ([]store.CalendarEntry, error)

	// Delete removes a task and, through the schema, its assignments.
	Delete(ctx context.Context, id int64) error

	// Assignees returns the IDs of the users assigned to a task.
	Assignees(ctx context.Context, id int64) ([]int64, error)
}

type taskServiceImpl struct {
	transactor      store.Transactor
	taskStore       store.TaskStore
	assignmentStore store.AssignmentStore
	eventEmitter    events.EventEmitter
	timeFunc        func() time.Time
	logger          *slog.Logger
}

// NewTaskService creates a TaskService. It panics if any required
// dependency is nil; wiring errors should fail at startup, not at the
// first request.
func NewTaskService(
	transactor store.Transactor,
	taskStore store.TaskStore,
	assignmentStore store.AssignmentStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) TaskService {
	if transactor == nil {
		panic("transactor cannot be nil")
	}
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if assignmentStore == nil {
		panic("assignmentStore cannot be nil")
	}
	if eventEmitter == nil {
		panic("eventEmitter cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		transactor:      transactor,
		taskStore:       taskStore,
		assignmentStore: assignmentStore,
		eventEmitter:    eventEmitter,
		timeFunc:        time.Now,
		logger:          logger.With("component", "task_service"),
	}
}

func (s *taskServiceImpl) CreateDraft(
	ctx context.Context,
	input CreateTaskInput,
) (*domain.Task, error) {
	task, err := domain.NewDraft(
		input.Title,
		input.ContentState,
		input.CreatorID,
		input.LeaderID,
		input.Deadline,
		input.Importance,
	)
	if err != nil {
		return nil, newServiceError("create_task", "invalid task data", err)
	}

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.taskStore.WithTx(tx).Create(ctx, task); err != nil {
			return err
		}
		return s.assignmentStore.WithTx(tx).ReplaceAll(ctx, task.ID, input.AssignedUserIDs)
	})
	if err != nil {
		s.logger.Error("failed to create task",
			"error", err,
			"creator_id", input.CreatorID)
		return nil, newServiceError("create_task", "failed to save task", err)
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"creator_id", task.CreatorID,
		"assignee_count", len(input.AssignedUserIDs))

	return task, nil
}

func (s *taskServiceImpl) Get(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, newServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

func (s *taskServiceImpl) Update(
	ctx context.Context,
	id int64,
	input UpdateTaskInput,
) (*domain.Task, error) {
	update := store.TaskUpdate{
		Title:        input.Title,
		ContentState: input.ContentState,
		LeaderID:     input.LeaderID,
		Deadline:     input.Deadline,
		Importance:   input.Importance,
	}

	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.taskStore.WithTx(tx).Update(ctx, id, update); err != nil {
			return err
		}
		return s.assignmentStore.WithTx(tx).ReplaceAll(ctx, id, input.AssignedUserIDs)
	})
	if err != nil {
		return nil, newServiceError("update_task", "failed to update task", err)
	}

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, newServiceError("update_task", "failed to reload task", err)
	}
	return task, nil
}

func (s *taskServiceImpl) UpdateDeadline(
	ctx context.Context,
	id int64,
	deadline *time.Time,
) error {
	if err := s.taskStore.UpdateDeadline(ctx, id, deadline); err != nil {
		return newServiceError("update_deadline", "failed to update deadline", err)
	}
	return nil
}

func (s *taskServiceImpl) Publish(ctx context.Context, id int64) (*domain.Task, error) {
	publishedAt := s.timeFunc().UTC()

	var task *domain.Task
	var assigneeIDs []int64

	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.taskStore.WithTx(tx)

		var err error
		task, err = txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := txTasks.Publish(ctx, id, publishedAt); err != nil {
			return err
		}

		assigneeIDs, err = s.assignmentStore.WithTx(tx).ListUserIDs(ctx, id)
		return err
	})
	if err != nil {
		return nil, newServiceError("publish_task", "failed to publish task", err)
	}

	task.Publish(publishedAt)

	if len(assigneeIDs) == 0 {
		s.logger.Info("task published without assignees", "task_id", id)
	}

	// The transition is committed. Token resolution and delivery run
	// detached from the request so the caller gets the publish result
	// immediately; problems there are logged and swallowed.
	event, err := events.NewEvent(events.EventTypeTaskPublished, events.TaskPublishedPayload{
		TaskID:      task.ID,
		Title:       task.Title,
		AssigneeIDs: assigneeIDs,
	})
	if err != nil {
		s.logger.Error("failed to build published event",
			"error", err,
			"task_id", id)
		return task, nil
	}

	// WithoutCancel keeps request-scoped values (trace ID) but detaches
	// the fan-out from the request lifetime.
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishNotifyTimeout)
	go func() {
		defer cancel()
		if err := s.eventEmitter.EmitEvent(notifyCtx, event); err != nil {
			s.logger.Error("failed to emit published event",
				"error", err,
				"task_id", id,
				"event_id", event.ID)
		}
	}()

	s.logger.Info("task published",
		"task_id", id,
		"assignee_count", len(assigneeIDs))

	return task, nil
}

func (s *taskServiceImpl) Calendar(
	ctx context.Context,
	userID int64,
) ([]store.CalendarEntry, error) {
	entries, err := s.taskStore.GetCalendarView(ctx, userID)
	if err != nil {
		return nil, newServiceError("calendar", "failed to load calendar view", err)
	}
	return entries, nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.taskStore.Delete(ctx, id); err != nil {
		return newServiceError("delete_task", "failed to delete task", err)
	}
	s.logger.Info("task deleted", "task_id", id)
	return nil
}

func (s *taskServiceImpl) Assignees(ctx context.Context, id int64) ([]int64, error) {
	if _, err := s.taskStore.GetByID(ctx, id); err != nil {
		return nil, newServiceError("list_assignees", "failed to retrieve task", err)
	}
	ids, err := s.assignmentStore.ListUserIDs(ctx, id)
	if err != nil {
		return nil, newServiceError("list_assignees", "failed to list assignees", err)
	}
	return ids, nil
}
