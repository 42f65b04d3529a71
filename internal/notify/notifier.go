package notify

import "context"

// Result summarizes the outcome of one push delivery attempt.
type Result struct {
	// SuccessCount is the number of devices the message reached.
	SuccessCount int

	// FailureCount is the number of devices that rejected the message.
	FailureCount int
}

// Notifier sends a push message to a set of device tokens.
//
// Implementations must treat delivery as best effort: a partial failure is
// reported through Result, not through the error return. The error return
// is reserved for transport-level failures where nothing was delivered.
type Notifier interface {
	Send(ctx context.Context, tokens []string, title, body string) (Result, error)
}
