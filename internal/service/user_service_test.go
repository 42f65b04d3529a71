package service_test

import (
	"context"
	"testing"

	"github.com/Skarbonka1/serwerfinal/internal/config"
	"github.com/Skarbonka1/serwerfinal/internal/domain"
	"github.com/Skarbonka1/serwerfinal/internal/mocks"
	"github.com/Skarbonka1/serwerfinal/internal/service"
	"github.com/Skarbonka1/serwerfinal/internal/service/auth"
	"github.com/Skarbonka1/serwerfinal/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, userStore *mocks.MockUserStore) service.UserService {
	t.Helper()
	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	// Minimum cost keeps the test fast.
	return service.NewUserService(userStore, jwtService, auth.NewBcryptHasher(4), discardLogger())
}

func TestUserService_Register(t *testing.T) {
	userStore := &mocks.MockUserStore{
		CreateFn: func(ctx context.Context, user *domain.User) error {
			user.ID = 12
			return nil
		},
	}
	svc := newUserService(t, userStore)

	user, err := svc.Register(context.Background(), service.RegisterUserInput{
		Name:     "Anna Nowak",
		Email:    "anna@example.pl",
		Password: "sekret123",
		Role:     "handlowiec",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(12), user.ID)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "sekret123", user.PasswordHash)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	userStore := &mocks.MockUserStore{Err: store.ErrEmailExists}
	svc := newUserService(t, userStore)

	_, err := svc.Register(context.Background(), service.RegisterUserInput{
		Name:     "Anna",
		Email:    "anna@example.pl",
		Password: "sekret123",
	})
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestUserService_Login(t *testing.T) {
	hasher := auth.NewBcryptHasher(4)
	hash, err := hasher.Hash("sekret123")
	require.NoError(t, err)

	userStore := &mocks.MockUserStore{
		User: &domain.User{ID: 5, Email: "anna@example.pl", PasswordHash: hash},
	}
	svc := newUserService(t, userStore)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := svc.Login(context.Background(), "anna@example.pl", "sekret123")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, int64(5), result.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "anna@example.pl", "zle-haslo")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	userStore := &mocks.MockUserStore{Err: store.ErrUserNotFound}
	svc := newUserService(t, userStore)

	// An unknown email reads the same as a bad password to the caller.
	_, err := svc.Login(context.Background(), "nikt@example.pl", "cokolwiek")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestUserService_RegisterFCMToken(t *testing.T) {
	var gotID int64
	var gotToken *string
	userStore := &mocks.MockUserStore{
		SetFCMTokenFn: func(ctx context.Context, id int64, token *string) error {
			gotID = id
			gotToken = token
			return nil
		},
	}
	svc := newUserService(t, userStore)

	token := "device-token"
	require.NoError(t, svc.RegisterFCMToken(context.Background(), 5, &token))
	assert.Equal(t, int64(5), gotID)
	require.NotNil(t, gotToken)
	assert.Equal(t, "device-token", *gotToken)

	require.NoError(t, svc.RegisterFCMToken(context.Background(), 5, nil))
	assert.Nil(t, gotToken)
}
