package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Skarbonka1/serwerfinal/internal/events"
	"github.com/Skarbonka1/serwerfinal/internal/store"
)

// Notification title shown on assignees' devices when a task goes live.
const publishedNotificationTitle = "Nowe zadanie"

// TaskPublishedHandler reacts to task publication events by resolving the
// assignees' device tokens and queueing a push delivery.
type TaskPublishedHandler struct {
	userStore  store.UserStore
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// NewTaskPublishedHandler creates a handler wired to the given dispatcher.
func NewTaskPublishedHandler(
	userStore store.UserStore,
	dispatcher *Dispatcher,
	logger *slog.Logger,
) *TaskPublishedHandler {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if dispatcher == nil {
		panic("dispatcher cannot be nil")
	}

	return &TaskPublishedHandler{
		userStore:  userStore,
		dispatcher: dispatcher,
		logger:     logger.With("component", "task_published_handler"),
	}
}

// HandleEvent processes task publication events. Events of other types are
// ignored. Token lookup failures are returned so the emitter can log them,
// but by then the publication itself has already committed.
func (h *TaskPublishedHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.EventTypeTaskPublished {
		return nil
	}

	var payload events.TaskPublishedPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to decode task published payload: %w", err)
	}

	if len(payload.AssigneeIDs) == 0 {
		h.logger.Info("published task has no assignees, skipping notification",
			"task_id", payload.TaskID)
		return nil
	}

	tokens, err := h.userStore.GetTokensByIDs(ctx, payload.AssigneeIDs)
	if err != nil {
		return fmt.Errorf("failed to resolve device tokens: %w", err)
	}

	if len(tokens) == 0 {
		h.logger.Info("no assignee has a device token registered",
			"task_id", payload.TaskID,
			"assignee_count", len(payload.AssigneeIDs))
		return nil
	}

	h.dispatcher.Enqueue(Job{
		TaskID: payload.TaskID,
		Title:  publishedNotificationTitle,
		Body:   payload.Title,
		Tokens: tokens,
	})

	return nil
}
