package mocks

import (
	"context"
	"sync"

	"github.com/Skarbonka1/serwerfinal/internal/events"
)

// MockEventEmitter implements events.EventEmitter for testing. It is
// safe for concurrent use because publication emits from a detached
// goroutine.
type MockEventEmitter struct {
	// EmitFn overrides the default behavior.
	EmitFn func(ctx context.Context, event *events.Event) error

	// Default response values
	Err error

	mu        sync.Mutex
	emitCalls int
	emitted   []*events.Event
}

var _ events.EventEmitter = (*MockEventEmitter)(nil)

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.Event) error {
	m.mu.Lock()
	m.emitCalls++
	m.emitted = append(m.emitted, event)
	m.mu.Unlock()

	if m.EmitFn != nil {
		return m.EmitFn(ctx, event)
	}
	return m.Err
}

// EmitCalls returns how many times EmitEvent has been invoked.
func (m *MockEventEmitter) EmitCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.emitCalls
}

// EmittedEvents returns a copy of the events emitted so far.
func (m *MockEventEmitter) EmittedEvents() []*events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*events.Event, len(m.emitted))
	copy(out, m.emitted)
	return out
}
