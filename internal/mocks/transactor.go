package mocks

import (
	"context"

	"github.com/Skarbonka1/serwerfinal/internal/store"
)

// MockTransactor implements store.Transactor without a database: it calls
// the transactional function with a nil *sql.Tx. Pair it with store mocks
// whose WithTx returns the mock itself.
type MockTransactor struct {
	// RunFn overrides the default pass-through behavior.
	RunFn func(ctx context.Context, fn store.TxFn) error

	// BeginErr, when set, is returned without invoking fn. It simulates
	// a transaction that could not be opened.
	BeginErr error

	// Call tracking for verification
	RunCalls int
}

var _ store.Transactor = (*MockTransactor)(nil)

func (m *MockTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.RunCalls++
	if m.RunFn != nil {
		return m.RunFn(ctx, fn)
	}
	if m.BeginErr != nil {
		return m.BeginErr
	}
	return fn(ctx, nil)
}
