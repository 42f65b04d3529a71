package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Skarbonka1/serwerfinal/internal/domain"
	"github.com/Skarbonka1/serwerfinal/internal/events"
	"github.com/Skarbonka1/serwerfinal/internal/mocks"
	"github.com/Skarbonka1/serwerfinal/internal/service"
	"github.com/Skarbonka1/serwerfinal/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type taskServiceFixture struct {
	transactor  *mocks.MockTransactor
	tasks       *mocks.MockTaskStore
	assignments *mocks.MockAssignmentStore
	emitter     *mocks.MockEventEmitter
	svc         service.TaskService
}

func newTaskServiceFixture() *taskServiceFixture {
	f := &taskServiceFixture{
		transactor:  &mocks.MockTransactor{},
		tasks:       &mocks.MockTaskStore{},
		assignments: &mocks.MockAssignmentStore{},
		emitter:     &mocks.MockEventEmitter{},
	}
	f.svc = service.NewTaskService(
		f.transactor,
		f.tasks,
		f.assignments,
		f.emitter,
		discardLogger(),
	)
	return f
}

func TestTaskService_CreateDraft(t *testing.T) {
	f := newTaskServiceFixture()
	f.tasks.CreateFn = func(ctx context.Context, task *domain.Task) error {
		task.ID = 17
		return nil
	}

	task, err := f.svc.CreateDraft(context.Background(), service.CreateTaskInput{
		CreatorID:       3,
		AssignedUserIDs: []int64{5, 6},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(17), task.ID)
	assert.Equal(t, domain.DefaultTaskTitle, task.Title)
	assert.Equal(t, domain.TaskStatusDraft, task.Status)
	assert.Equal(t, 1, f.transactor.RunCalls)
	assert.Equal(t, int64(17), f.assignments.LastTaskID)
	assert.Equal(t, []int64{5, 6}, f.assignments.LastUserIDs)
}

func TestTaskService_CreateDraft_RejectsMissingCreator(t *testing.T) {
	f := newTaskServiceFixture()

	_, err := f.svc.CreateDraft(context.Background(), service.CreateTaskInput{Title: "x"})
	require.Error(t, err)
	assert.Zero(t, f.transactor.RunCalls, "nothing is written for invalid input")
}

func TestTaskService_CreateDraft_AssignmentFailureAbortsAll(t *testing.T) {
	f := newTaskServiceFixture()
	f.tasks.CreateFn = func(ctx context.Context, task *domain.Task) error {
		task.ID = 17
		return nil
	}
	f.assignments.Err = errors.New("constraint violation")

	_, err := f.svc.CreateDraft(context.Background(), service.CreateTaskInput{
		CreatorID:       3,
		AssignedUserIDs: []int64{999},
	})

	// The transactor returns the inner error, which means the real
	// implementation would have rolled back the task row too.
	require.Error(t, err)
}

func TestTaskService_Update_ReplacesAssignmentsWholesale(t *testing.T) {
	f := newTaskServiceFixture()
	f.tasks.Task = &domain.Task{ID: 8, CreatorID: 1, Status: domain.TaskStatusDraft}

	_, err := f.svc.Update(context.Background(), 8, service.UpdateTaskInput{
		Title: "Zmieniony",
	})
	require.NoError(t, err)

	// No assignee list in the input clears the assignment set.
	assert.Equal(t, 1, f.assignments.ReplaceAllCalls)
	assert.Empty(t, f.assignments.LastUserIDs)
	assert.Equal(t, "Zmieniony", f.tasks.LastUpdate.Title)
}

func TestTaskService_Update_NotFound(t *testing.T) {
	f := newTaskServiceFixture()
	f.tasks.UpdateFn = func(ctx context.Context, id int64, update store.TaskUpdate) error {
		return store.ErrTaskNotFound
	}

	_, err := f.svc.Update(context.Background(), 404, service.UpdateTaskInput{})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

// waitForEmits polls the emitter until the expected number of events
// has been emitted; the fan-out runs detached from the Publish call.
func waitForEmits(t *testing.T, emitter *mocks.MockEventEmitter, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if emitter.EmitCalls() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("emitter received %d events, want %d", emitter.EmitCalls(), want)
}

func TestTaskService_Publish_EmitsEventAfterCommit(t *testing.T) {
	f := newTaskServiceFixture()
	f.tasks.Task = &domain.Task{
		ID:        9,
		Title:     "Inwentaryzacja",
		CreatorID: 1,
		Status:    domain.TaskStatusDraft,
	}
	f.assignments.UserIDs = []int64{2, 3}

	committed := false
	f.transactor.RunFn = func(ctx context.Context, fn store.TxFn) error {
		if err := fn(ctx, nil); err != nil {
			return err
		}
		committed = true
		return nil
	}
	f.emitter.EmitFn = func(ctx context.Context, event *events.Event) error {
		assert.True(t, committed, "event must be emitted after the transaction committed")
		return nil
	}

	task, err := f.svc.Publish(context.Background(), 9)
	require.NoError(t, err)

	assert.Equal(t, domain.TaskStatusPublished, task.Status)
	assert.False(t, task.PublicationDate.IsZero())

	waitForEmits(t, f.emitter, 1)
	var payload events.TaskPublishedPayload
	require.NoError(t, f.emitter.EmittedEvents()[0].UnmarshalPayload(&payload))
	assert.Equal(t, int64(9), payload.TaskID)
	assert.Equal(t, "Inwentaryzacja", payload.Title)
	assert.Equal(t, []int64{2, 3}, payload.AssigneeIDs)
}

func TestTaskService_Publish_ReturnsBeforeFanOut(t *testing.T) {
	f := newTaskServiceFixture()
	f.tasks.Task = &domain.Task{ID: 9, CreatorID: 1, Status: domain.TaskStatusDraft}
	f.assignments.UserIDs = []int64{2, 3}

	// The emitter stands in for the whole fan-out chain, token lookup
	// included. It blocks until released, so a Publish that waited for
	// it could not return before the deadline below.
	release := make(chan struct{})
	f.emitter.EmitFn = func(ctx context.Context, event *events.Event) error {
		<-release
		return nil
	}

	done := make(chan struct{})
	var task *domain.Task
	var err error
	go func() {
		task, err = f.svc.Publish(context.Background(), 9)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on the notification fan-out")
	}
	require.NoError(t, err, "a slow token lookup must not delay the publish response")
	assert.True(t, task.IsPublished())

	close(release)
	waitForEmits(t, f.emitter, 1)
}

func TestTaskService_Publish_NotFoundEmitsNothing(t *testing.T) {
	f := newTaskServiceFixture()
	f.tasks.Err = store.ErrTaskNotFound

	_, err := f.svc.Publish(context.Background(), 404)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.Zero(t, f.emitter.EmitCalls())
}

func TestTaskService_Publish_EmitterFailureDoesNotFailPublish(t *testing.T) {
	f := newTaskServiceFixture()
	f.tasks.Task = &domain.Task{ID: 9, CreatorID: 1, Status: domain.TaskStatusDraft}
	f.assignments.UserIDs = []int64{2}
	f.emitter.Err = errors.New("handler down")

	task, err := f.svc.Publish(context.Background(), 9)
	require.NoError(t, err, "delivery problems never undo a committed publish")
	assert.True(t, task.IsPublished())
	waitForEmits(t, f.emitter, 1)
}

func TestTaskService_Publish_ZeroAssigneesStillPublishes(t *testing.T) {
	f := newTaskServiceFixture()
	f.tasks.Task = &domain.Task{ID: 9, CreatorID: 1, Status: domain.TaskStatusDraft}
	f.assignments.UserIDs = nil

	task, err := f.svc.Publish(context.Background(), 9)
	require.NoError(t, err)
	assert.True(t, task.IsPublished())

	waitForEmits(t, f.emitter, 1)
	var payload events.TaskPublishedPayload
	require.NoError(t, f.emitter.EmittedEvents()[0].UnmarshalPayload(&payload))
	assert.Empty(t, payload.AssigneeIDs)
}

func TestTaskService_UpdateDeadline(t *testing.T) {
	f := newTaskServiceFixture()

	var gotDeadline *time.Time
	gotCalled := false
	f.tasks.UpdateDeadlineFn = func(ctx context.Context, id int64, deadline *time.Time) error {
		gotCalled = true
		gotDeadline = deadline
		return nil
	}

	deadline := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, f.svc.UpdateDeadline(context.Background(), 5, &deadline))
	require.True(t, gotCalled)
	require.NotNil(t, gotDeadline)
	assert.True(t, gotDeadline.Equal(deadline))

	require.NoError(t, f.svc.UpdateDeadline(context.Background(), 5, nil))
	assert.Nil(t, gotDeadline)
}

func TestTaskService_Delete(t *testing.T) {
	f := newTaskServiceFixture()
	require.NoError(t, f.svc.Delete(context.Background(), 3))
	assert.Equal(t, 1, f.tasks.DeleteCalls)

	f.tasks.Err = store.ErrTaskNotFound
	assert.ErrorIs(t, f.svc.Delete(context.Background(), 404), store.ErrTaskNotFound)
}

func TestTaskService_Calendar(t *testing.T) {
	f := newTaskServiceFixture()
	f.tasks.Entries = []store.CalendarEntry{
		{Task: domain.Task{ID: 2}, CreatorName: "Anna"},
		{Task: domain.Task{ID: 1}, CreatorName: "Marek"},
	}

	entries, err := f.svc.Calendar(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Anna", entries[0].CreatorName)
}
