package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ntokozodev/user-tasks-api/internal/domain"
	"github.com/ntokozodev/user-tasks-api/internal/service/auth"
	"github.com/ntokozodev/user-tasks-api/internal/store"
)

// UserService provides user management operations.
type UserService interface {
	// CreateUser registers a new user with a hashed password.
	// Returns ErrEmailExists if the email is already taken.
	CreateUser(ctx context.Context, email, displayName, password string) (*domain.User, error)

	// GetUser retrieves a user by ID. Returns ErrUserNotFound if absent.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// ListUsers returns all users ordered by ascending ID.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// DeleteUser removes a user and, through the schema cascade, their tasks.
	// Returns ErrUserNotFound if absent.
	DeleteUser(ctx context.Context, id int64) error

	// Authenticate verifies a user's credentials for login.
	// Returns ErrInvalidCredentials on unknown email or wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userStore store.UserStore
	verifier  auth.PasswordVerifier
	runInTx   func(ctx context.Context, fn store.TxFn) error // Injectable for testing
	logger    *slog.Logger
}

// NewUserService creates a new UserService. Writes run inside database
// transactions against db.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	db *sql.DB,
	userStore store.UserStore,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if db == nil {
		return nil, fmt.Errorf("user service: db cannot be nil")
	}
	if userStore == nil {
		return nil, fmt.Errorf("user service: userStore cannot be nil")
	}
	if verifier == nil {
		return nil, fmt.Errorf("user service: verifier cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		verifier:  verifier,
		runInTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
		logger: logger.With("component", "user_service"),
	}, nil
}

// CreateUser registers a new user. The store hashes the password.
func (s *userServiceImpl) CreateUser(
	ctx context.Context,
	email, displayName, password string,
) (*domain.User, error) {
	user, err := domain.NewUser(email, displayName, password)
	if err != nil {
		s.logger.Warn("failed to build user", "error", err)
		return nil, err
	}

	err = s.runInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("email already registered")
			return nil, ErrEmailExists
		}
		s.logger.Error("failed to create user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *userServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsers returns all users.
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user by ID. The user row and its tasks go away in the
// same transaction through the schema's cascade.
func (s *userServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	err := s.runInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// Authenticate verifies a user's credentials.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *userServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
