package service

import (
	"context"
	"log/slog"

	"github.com/Skarbonka1/serwerfinal/internal/domain"
	"github.com/Skarbonka1/serwerfinal/internal/service/auth"
	"github.com/Skarbonka1/serwerfinal/internal/store"
)

// RegisterUserInput carries the fields of a registration request.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Subrole  string
}

// LoginResult bundles the issued token with the authenticated user.
type LoginResult struct {
	Token string
	User  *domain.User
}

// UserService provides registration, authentication and account lookups.
type UserService interface {
	// Register creates a new account with a hashed password.
	// Returns store.ErrEmailExists if the email is already taken.
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)

	// Login verifies the credentials and issues a JWT access token.
	// Returns auth.ErrInvalidCredentials on any mismatch; whether the
	// email or the password was wrong is deliberately not revealed.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Get retrieves a user by ID.
	Get(ctx context.Context, id int64) (*domain.User, error)

	// List returns all users.
	List(ctx context.Context) ([]*domain.User, error)

	// RegisterFCMToken stores (or clears, when nil) the push token of
	// the user's current device.
	RegisterFCMToken(ctx context.Context, userID int64, token *string) error
}

type userServiceImpl struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	hasher     *auth.BcryptHasher
	logger     *slog.Logger
}

// NewUserService creates a UserService. It panics if any required
// dependency is nil.
func NewUserService(
	userStore store.UserStore,
	jwtService auth.JWTService,
	hasher *auth.BcryptHasher,
	logger *slog.Logger,
) UserService {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if jwtService == nil {
		panic("jwtService cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore:  userStore,
		jwtService: jwtService,
		hasher:     hasher,
		logger:     logger.With("component", "user_service"),
	}
}

func (s *userServiceImpl) Register(
	ctx context.Context,
	input RegisterUserInput,
) (*domain.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, newServiceError("register_user", "failed to hash password", err)
	}

	user, err := domain.NewUser(input.Name, input.Email, hash, input.Role, input.Subrole)
	if err != nil {
		return nil, newServiceError("register_user", "invalid user data", err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, newServiceError("register_user", "failed to save user", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

func (s *userServiceImpl) Login(
	ctx context.Context,
	email, password string,
) (*LoginResult, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, newServiceError("login", "failed to look up user", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, newServiceError("login", "failed to issue token", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &LoginResult{Token: token, User: user}, nil
}

func (s *userServiceImpl) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, newServiceError("get_user", "failed to retrieve user", err)
	}
	return user, nil
}

func (s *userServiceImpl) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, newServiceError("list_users", "failed to list users", err)
	}
	return users, nil
}

func (s *userServiceImpl) RegisterFCMToken(
	ctx context.Context,
	userID int64,
	token *string,
) error {
	if err := s.userStore.SetFCMToken(ctx, userID, token); err != nil {
		return newServiceError("register_fcm_token", "failed to store token", err)
	}
	return nil
}
