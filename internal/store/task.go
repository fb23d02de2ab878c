package store

import (
	"context"
	"database/sql"

	"github.com/ntokozodev/user-tasks-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store and assigns its ID.
	// It handles domain validation internally.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update saves changes to an existing task's fields. The status column is
	// never written by this method; only the sweep completes tasks.
	// The write is guarded by the task's version; a concurrent modification
	// returns ErrConflict. Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete physically removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// FindByUser retrieves all tasks owned by the given user,
	// ordered by ascending ID. Returns an empty slice if there are none.
	FindByUser(ctx context.Context, userID int64) ([]*domain.Task, error)

	// FindByUserPage retrieves one page of the given user's tasks, ordered by
	// ascending ID. The page index is zero-based.
	FindByUserPage(ctx context.Context, userID int64, page, size int) ([]*domain.Task, error)

	// FindByStatus retrieves all tasks with the given status,
	// ordered by ascending ID. Returns an empty slice if there are none.
	FindByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)

	// CompleteAll transitions the tasks with the given IDs to done, skipping
	// any that are no longer pending. Returns the number of rows updated.
	CompleteAll(ctx context.Context, ids []int64) (int64, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
