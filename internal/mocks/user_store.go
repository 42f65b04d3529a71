package mocks

import (
	"context"

	"github.com/Skarbonka1/serwerfinal/internal/domain"
	"github.com/Skarbonka1/serwerfinal/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	// Custom behavior functions
	CreateFn         func(ctx context.Context, user *domain.User) error
	GetByIDFn        func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	ListFn           func(ctx context.Context) ([]*domain.User, error)
	SetFCMTokenFn    func(ctx context.Context, id int64, token *string) error
	GetTokensByIDsFn func(ctx context.Context, ids []int64) ([]string, error)

	// Default response values
	User   *domain.User
	Users  []*domain.User
	Tokens []string
	Err    error

	// Call tracking for verification
	GetTokensByIDsCalls int
	LastTokenIDs        []int64
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return m.Err
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.User, m.Err
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return m.User, m.Err
}

func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Users, m.Err
}

func (m *MockUserStore) SetFCMToken(ctx context.Context, id int64, token *string) error {
	if m.SetFCMTokenFn != nil {
		return m.SetFCMTokenFn(ctx, id, token)
	}
	return m.Err
}

func (m *MockUserStore) GetTokensByIDs(ctx context.Context, ids []int64) ([]string, error) {
	m.GetTokensByIDsCalls++
	m.LastTokenIDs = ids
	if m.GetTokensByIDsFn != nil {
		return m.GetTokensByIDsFn(ctx, ids)
	}
	return m.Tokens, m.Err
}
