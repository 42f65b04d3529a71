package domain

import (
	"errors"
	"time"
)

// Common validation errors for User.
var (
	ErrEmptyUserName  = errors.New("user name cannot be empty")
	ErrEmptyUserEmail = errors.New("user email cannot be empty")
)

// User represents an account that can create tasks, be assigned to them
// and receive push notifications. FCMToken is the opaque device token of
// the user's most recently registered device; users without a token are
// simply skipped during notification fan-out.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Subrole      string    `json:"subrole"`
	FCMToken     *string   `json:"fcm_token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser creates a new user with the given name, email and password
// hash. Hashing is the caller's concern; the domain never sees plaintext
// credentials.
func NewUser(name, email, passwordHash, role, subrole string) (*User, error) {
	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Subrole:      subrole,
		CreatedAt:    time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrEmptyUserName
	}

	if u.Email == "" {
		return ErrEmptyUserEmail
	}

	return nil
}
