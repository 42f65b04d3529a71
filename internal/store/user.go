package store

import (
	"context"

	"github.com/Skarbonka1/serwerfinal/internal/domain"
)

// UserStore defines the interface for user data persistence. The task
// lifecycle only reads notification tokens; the rest serves the user
// CRUD and auth surface.
type UserStore interface {
	// Create saves a new user and fills in its store-assigned ID.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns all users ordered by ID.
	List(ctx context.Context) ([]*domain.User, error)

	// SetFCMToken registers (or clears, when nil) the push token of the
	// user's current device.
	// Returns ErrUserNotFound if the user does not exist.
	SetFCMToken(ctx context.Context, id int64, token *string) error

	// GetTokensByIDs returns the FCM tokens of the given users, skipping
	// users that have no token registered. Order is unspecified.
	GetTokensByIDs(ctx context.Context, ids []int64) ([]string, error)
}
