package mocks

import (
	"context"
	"sync"

	"github.com/Skarbonka1/serwerfinal/internal/notify"
)

// MockNotifier implements notify.Notifier for testing. It is safe for
// concurrent use because the dispatcher delivers from worker goroutines.
type MockNotifier struct {
	// SendFn overrides the default behavior.
	SendFn func(ctx context.Context, tokens []string, title, body string) (notify.Result, error)

	// Default response values
	Result notify.Result
	Err    error

	mu         sync.Mutex
	sendCalls  int
	lastTokens []string
	lastTitle  string
	lastBody   string
}

var _ notify.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Send(
	ctx context.Context,
	tokens []string,
	title, body string,
) (notify.Result, error) {
	m.mu.Lock()
	m.sendCalls++
	m.lastTokens = tokens
	m.lastTitle = title
	m.lastBody = body
	m.mu.Unlock()

	if m.SendFn != nil {
		return m.SendFn(ctx, tokens, title, body)
	}
	return m.Result, m.Err
}

// SendCalls returns how many times Send has been invoked.
func (m *MockNotifier) SendCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sendCalls
}

// LastSend returns the arguments of the most recent Send call.
func (m *MockNotifier) LastSend() (tokens []string, title, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastTokens, m.lastTitle, m.lastBody
}
