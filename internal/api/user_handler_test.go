package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Skarbonka1/serwerfinal/internal/domain"
	"github.com/Skarbonka1/serwerfinal/internal/service"
	"github.com/Skarbonka1/serwerfinal/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserService implements service.UserService with overridable
// function fields.
type stubUserService struct {
	RegisterFn         func(ctx context.Context, input service.RegisterUserInput) (*domain.User, error)
	LoginFn            func(ctx context.Context, email, password string) (*service.LoginResult, error)
	GetFn              func(ctx context.Context, id int64) (*domain.User, error)
	ListFn             func(ctx context.Context) ([]*domain.User, error)
	RegisterFCMTokenFn func(ctx context.Context, userID int64, token *string) error
}

func (s *stubUserService) Register(
	ctx context.Context,
	input service.RegisterUserInput,
) (*domain.User, error) {
	return s.RegisterFn(ctx, input)
}

func (s *stubUserService) Login(
	ctx context.Context,
	email, password string,
) (*service.LoginResult, error) {
	return s.LoginFn(ctx, email, password)
}

func (s *stubUserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.GetFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.ListFn(ctx)
}

func (s *stubUserService) RegisterFCMToken(ctx context.Context, userID int64, token *string) error {
	return s.RegisterFCMTokenFn(ctx, userID, token)
}

func TestUserHandler_Me(t *testing.T) {
	svc := &stubUserService{
		GetFn: func(ctx context.Context, id int64) (*domain.User, error) {
			require.Equal(t, int64(7), id)
			return &domain.User{ID: 7, Name: "Ala", Email: "ala@example.com"}, nil
		},
	}
	handler := NewUserHandler(svc, testLogger())

	w := httptest.NewRecorder()
	r := newTaskRequest(t, http.MethodGet, "/me", nil, 7, "")
	handler.Me(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp UserResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "Ala", resp.Name)
}

func TestUserHandler_Me_RequiresAuth(t *testing.T) {
	handler := NewUserHandler(&stubUserService{}, testLogger())

	w := httptest.NewRecorder()
	r := newTaskRequest(t, http.MethodGet, "/me", nil, 0, "")
	handler.Me(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_GetUser_NotFound(t *testing.T) {
	svc := &stubUserService{
		GetFn: func(ctx context.Context, id int64) (*domain.User, error) {
			return nil, store.ErrUserNotFound
		},
	}
	handler := NewUserHandler(svc, testLogger())

	w := httptest.NewRecorder()
	r := newTaskRequest(t, http.MethodGet, "/users/99", nil, 7, "99")
	handler.GetUser(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_RegisterFCMToken(t *testing.T) {
	var gotUserID int64
	var gotToken *string
	svc := &stubUserService{
		RegisterFCMTokenFn: func(ctx context.Context, userID int64, token *string) error {
			gotUserID = userID
			gotToken = token
			return nil
		},
	}
	handler := NewUserHandler(svc, testLogger())

	w := httptest.NewRecorder()
	r := newTaskRequest(t, http.MethodPost, "/users/fcm-token",
		map[string]interface{}{"token": "device-token-1"}, 7, "")
	handler.RegisterFCMToken(w, r)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(7), gotUserID)
	require.NotNil(t, gotToken)
	assert.Equal(t, "device-token-1", *gotToken)
}

func TestUserHandler_RegisterFCMToken_NullClears(t *testing.T) {
	called := false
	svc := &stubUserService{
		RegisterFCMTokenFn: func(ctx context.Context, userID int64, token *string) error {
			called = true
			assert.Nil(t, token)
			return nil
		},
	}
	handler := NewUserHandler(svc, testLogger())

	w := httptest.NewRecorder()
	r := newTaskRequest(t, http.MethodPost, "/users/fcm-token",
		map[string]interface{}{"token": nil}, 7, "")
	handler.RegisterFCMToken(w, r)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, called)
}

func TestUserHandler_ListUsers(t *testing.T) {
	svc := &stubUserService{
		ListFn: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{
				{ID: 1, Name: "Ala", Email: "ala@example.com"},
				{ID: 2, Name: "Bartek", Email: "bartek@example.com"},
			}, nil
		},
	}
	handler := NewUserHandler(svc, testLogger())

	w := httptest.NewRecorder()
	r := newTaskRequest(t, http.MethodGet, "/users", nil, 7, "")
	handler.ListUsers(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []UserResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Bartek", resp[1].Name)
}
