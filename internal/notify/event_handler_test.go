package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Skarbonka1/serwerfinal/internal/events"
	"github.com/Skarbonka1/serwerfinal/internal/mocks"
	"github.com/Skarbonka1/serwerfinal/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerWithDispatcher(
	t *testing.T,
	userStore *mocks.MockUserStore,
	notifier *mocks.MockNotifier,
) *notify.TaskPublishedHandler {
	t.Helper()
	dispatcher := notify.NewDispatcher(notifier, notify.DispatcherConfig{
		WorkerCount: 1,
		QueueSize:   4,
	}, discardLogger())
	dispatcher.Start()
	t.Cleanup(dispatcher.Stop)
	return notify.NewTaskPublishedHandler(userStore, dispatcher, discardLogger())
}

func TestTaskPublishedHandler_EnqueuesDelivery(t *testing.T) {
	userStore := &mocks.MockUserStore{Tokens: []string{"tok-1", "tok-2"}}
	notifier := &mocks.MockNotifier{Result: notify.Result{SuccessCount: 2}}
	handler := newHandlerWithDispatcher(t, userStore, notifier)

	event, err := events.NewEvent(events.EventTypeTaskPublished, events.TaskPublishedPayload{
		TaskID:      15,
		Title:       "Zamówienie materiałów",
		AssigneeIDs: []int64{4, 9},
	})
	require.NoError(t, err)

	require.NoError(t, handler.HandleEvent(context.Background(), event))

	assert.Equal(t, []int64{4, 9}, userStore.LastTokenIDs)

	waitForCalls(t, notifier, 1)
	tokens, title, body := notifier.LastSend()
	assert.Equal(t, []string{"tok-1", "tok-2"}, tokens)
	assert.Equal(t, "Nowe zadanie", title)
	assert.Equal(t, "Zamówienie materiałów", body)
}

func TestTaskPublishedHandler_IgnoresOtherEventTypes(t *testing.T) {
	userStore := &mocks.MockUserStore{}
	notifier := &mocks.MockNotifier{}
	handler := newHandlerWithDispatcher(t, userStore, notifier)

	event, err := events.NewEvent("user.registered", map[string]string{"email": "a@b.pl"})
	require.NoError(t, err)

	require.NoError(t, handler.HandleEvent(context.Background(), event))
	assert.Zero(t, userStore.GetTokensByIDsCalls)
}

func TestTaskPublishedHandler_NoAssignees(t *testing.T) {
	userStore := &mocks.MockUserStore{}
	notifier := &mocks.MockNotifier{}
	handler := newHandlerWithDispatcher(t, userStore, notifier)

	event, err := events.NewEvent(events.EventTypeTaskPublished, events.TaskPublishedPayload{
		TaskID: 20,
		Title:  "Bez obsady",
	})
	require.NoError(t, err)

	require.NoError(t, handler.HandleEvent(context.Background(), event))
	assert.Zero(t, userStore.GetTokensByIDsCalls)
	assert.Zero(t, notifier.SendCalls())
}

func TestTaskPublishedHandler_NoTokensRegistered(t *testing.T) {
	userStore := &mocks.MockUserStore{Tokens: []string{}}
	notifier := &mocks.MockNotifier{}
	handler := newHandlerWithDispatcher(t, userStore, notifier)

	event, err := events.NewEvent(events.EventTypeTaskPublished, events.TaskPublishedPayload{
		TaskID:      21,
		Title:       "Bez urządzeń",
		AssigneeIDs: []int64{7},
	})
	require.NoError(t, err)

	require.NoError(t, handler.HandleEvent(context.Background(), event))
	assert.Equal(t, 1, userStore.GetTokensByIDsCalls)
	assert.Zero(t, notifier.SendCalls())
}

func TestTaskPublishedHandler_TokenLookupFailure(t *testing.T) {
	userStore := &mocks.MockUserStore{Err: errors.New("db down")}
	notifier := &mocks.MockNotifier{}
	handler := newHandlerWithDispatcher(t, userStore, notifier)

	event, err := events.NewEvent(events.EventTypeTaskPublished, events.TaskPublishedPayload{
		TaskID:      22,
		Title:       "Awaria",
		AssigneeIDs: []int64{1},
	})
	require.NoError(t, err)

	assert.Error(t, handler.HandleEvent(context.Background(), event))
	assert.Zero(t, notifier.SendCalls())
}
