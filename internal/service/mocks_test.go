package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/ntokozodev/user-tasks-api/internal/domain"
	"github.com/ntokozodev/user-tasks-api/internal/service/auth"
	"github.com/ntokozodev/user-tasks-api/internal/store"
)

// mockTaskRepository implements TaskRepository with function fields so each
// test can supply just the behavior it needs.
type mockTaskRepository struct {
	createFn         func(ctx context.Context, task *domain.Task) error
	getByIDFn        func(ctx context.Context, id int64) (*domain.Task, error)
	updateFn         func(ctx context.Context, task *domain.Task) error
	deleteFn         func(ctx context.Context, id int64) error
	findByUserFn     func(ctx context.Context, userID int64) ([]*domain.Task, error)
	findByUserPageFn func(ctx context.Context, userID int64, page, size int) ([]*domain.Task, error)

	createCalls int
	updateCalls int
	deleteCalls int
}

func (m *mockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, task)
	}
	return nil
}

func (m *mockTaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrTaskNotFound
}

func (m *mockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	m.updateCalls++
	if m.updateFn != nil {
		return m.updateFn(ctx, task)
	}
	return nil
}

func (m *mockTaskRepository) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTaskRepository) FindByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	if m.findByUserFn != nil {
		return m.findByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockTaskRepository) FindByUserPage(
	ctx context.Context,
	userID int64,
	page, size int,
) ([]*domain.Task, error) {
	if m.findByUserPageFn != nil {
		return m.findByUserPageFn(ctx, userID, page, size)
	}
	return nil, nil
}

// mockUserRepository implements UserRepository.
type mockUserRepository struct {
	getByIDFn func(ctx context.Context, id int64) (*domain.User, error)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

// mockUserStore implements store.UserStore for user service tests.
type mockUserStore struct {
	createFn     func(ctx context.Context, user *domain.User) error
	getByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	listFn       func(ctx context.Context) ([]*domain.User, error)
	deleteFn     func(ctx context.Context, id int64) error
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUserStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// newTestUserService builds a userServiceImpl whose transaction runner calls
// the function directly; the mock store ignores the nil transaction.
func newTestUserService(userStore store.UserStore, verifier auth.PasswordVerifier) *userServiceImpl {
	return &userServiceImpl{
		userStore: userStore,
		verifier:  verifier,
		runInTx: func(ctx context.Context, fn store.TxFn) error {
			return fn(ctx, nil)
		},
		logger: slog.Default().With("component", "user_service"),
	}
}

// mockPasswordVerifier implements auth.PasswordVerifier.
type mockPasswordVerifier struct {
	compareFn func(hashedPassword, password string) error
}

func (m *mockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.compareFn != nil {
		return m.compareFn(hashedPassword, password)
	}
	return nil
}
