package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ntokozodev/user-tasks-api/internal/domain"
	"github.com/ntokozodev/user-tasks-api/internal/store"
)

// TaskRepository defines the persistence operations the task service needs.
// It is a service-owned subset of store.TaskStore.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
	FindByUser(ctx context.Context, userID int64) ([]*domain.Task, error)
	FindByUserPage(ctx context.Context, userID int64, page, size int) ([]*domain.Task, error)
}

// UserRepository defines the user lookups the task service needs.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// CreateTaskRequest carries the fields for a new task. DateTime must be in
// the "2006-01-02 15:04:05" wire format.
type CreateTaskRequest struct {
	Name        string
	Description string
	DateTime    string
}

// UpdateTaskRequest carries a partial task update. Nil fields leave the
// prior value unchanged. Status is deliberately absent: only the sweep
// transitions task status.
type UpdateTaskRequest struct {
	Name        *string
	Description *string
	DateTime    *string
}

// TaskService provides task lifecycle operations scoped to an owning user.
type TaskService interface {
	// CreateTask creates a new pending task for the given owner.
	// Returns ErrUserNotFound if the owner does not exist, or a validation
	// error if the date-time string is malformed; neither touches the store.
	CreateTask(ctx context.Context, ownerID int64, req CreateTaskRequest) (*domain.Task, error)

	// UpdateTask applies a partial update to the owner's task.
	// Returns ErrTaskNotFound if absent, ErrTaskNotOwned on owner mismatch,
	// or a validation error if a present date-time string is malformed.
	UpdateTask(ctx context.Context, ownerID, taskID int64, req UpdateTaskRequest) (*domain.Task, error)

	// GetTask retrieves the owner's task. Read-only.
	// Returns ErrTaskNotFound if absent or ErrTaskNotOwned on owner mismatch.
	GetTask(ctx context.Context, ownerID, taskID int64) (*domain.Task, error)

	// ListTasks returns all tasks owned by ownerID, ordered by ascending ID.
	// Returns ErrUserNotFound if the owner does not exist.
	ListTasks(ctx context.Context, ownerID int64) ([]*domain.Task, error)

	// ListTasksPage returns one zero-based page of the owner's tasks, ordered
	// by ascending ID. Returns ErrUserNotFound if the owner does not exist.
	ListTasksPage(ctx context.Context, ownerID int64, page, size int) ([]*domain.Task, error)

	// DeleteTask physically removes the owner's task.
	// Returns ErrTaskNotFound if absent or ErrTaskNotOwned on owner mismatch.
	DeleteTask(ctx context.Context, ownerID, taskID int64) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskRepo TaskRepository
	userRepo UserRepository
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskRepo TaskRepository,
	userRepo UserRepository,
	logger *slog.Logger,
) (TaskService, error) {
	if taskRepo == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskRepo cannot be nil",
		}
	}
	if userRepo == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "userRepo cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskRepo: taskRepo,
		userRepo: userRepo,
		logger:   logger.With("component", "task_service"),
	}, nil
}

// CreateTask creates a new pending task owned by ownerID.
// The date-time string is parsed before anything touches the store, so a
// malformed schedule never results in a write.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	ownerID int64,
	req CreateTaskRequest,
) (*domain.Task, error) {
	if _, err := s.requireUser(ctx, ownerID, "create_task"); err != nil {
		return nil, err
	}

	task, err := domain.NewTask(ownerID, req.Name, req.Description, req.DateTime)
	if err != nil {
		s.logger.Warn("failed to build task",
			"error", err,
			"user_id", ownerID)
		return nil, err
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			"error", err,
			"user_id", ownerID)
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"user_id", ownerID)
	return task, nil
}

// UpdateTask applies the present fields of req to the owner's task.
// Absent fields keep their prior values; status is never touched.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	ownerID, taskID int64,
	req UpdateTaskRequest,
) (*domain.Task, error) {
	task, err := s.loadOwnedTask(ctx, ownerID, taskID, "update_task")
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		task.Name = *req.Name
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DateTime != nil {
		scheduledAt, err := domain.ParseDateTime(*req.DateTime)
		if err != nil {
			s.logger.Warn("invalid date-time in task update",
				"error", err,
				"task_id", taskID)
			return nil, err
		}
		task.ScheduledAt = scheduledAt
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, store.ErrConflict) {
			s.logger.Warn("task update lost to concurrent modification",
				"task_id", taskID)
		} else {
			s.logger.Error("failed to update task",
				"error", err,
				"task_id", taskID)
		}
		return nil, NewTaskServiceError("update_task", "failed to save task", err)
	}

	s.logger.Info("task updated",
		"task_id", taskID,
		"user_id", ownerID)
	return task, nil
}

// GetTask retrieves the owner's task without side effects.
func (s *taskServiceImpl) GetTask(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	return s.loadOwnedTask(ctx, ownerID, taskID, "get_task")
}

// ListTasks returns every task owned by ownerID.
func (s *taskServiceImpl) ListTasks(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	if _, err := s.requireUser(ctx, ownerID, "list_tasks"); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindByUser(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"user_id", ownerID)
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	return tasks, nil
}

// ListTasksPage returns one zero-based page of the owner's tasks.
func (s *taskServiceImpl) ListTasksPage(
	ctx context.Context,
	ownerID int64,
	page, size int,
) ([]*domain.Task, error) {
	if page < 0 {
		return nil, fmt.Errorf("%w: page index cannot be negative", domain.ErrValidation)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive", domain.ErrValidation)
	}

	if _, err := s.requireUser(ctx, ownerID, "list_tasks_page"); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindByUserPage(ctx, ownerID, page, size)
	if err != nil {
		s.logger.Error("failed to list tasks page",
			"error", err,
			"user_id", ownerID,
			"page", page,
			"size", size)
		return nil, NewTaskServiceError("list_tasks_page", "failed to list tasks", err)
	}

	return tasks, nil
}

// DeleteTask physically removes the owner's task.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, ownerID, taskID int64) error {
	if _, err := s.loadOwnedTask(ctx, ownerID, taskID, "delete_task"); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		s.logger.Error("failed to delete task",
			"error", err,
			"task_id", taskID)
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	s.logger.Info("task deleted",
		"task_id", taskID,
		"user_id", ownerID)
	return nil
}

// requireUser loads the user or returns ErrUserNotFound.
func (s *taskServiceImpl) requireUser(
	ctx context.Context,
	userID int64,
	operation string,
) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found",
				"user_id", userID,
				"operation", operation)
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to look up user",
			"error", err,
			"user_id", userID)
		return nil, NewTaskServiceError(operation, "failed to look up user", err)
	}
	return user, nil
}

// loadOwnedTask loads a task and enforces ownership. Every operation that
// touches a single task goes through this check, so not-found and
// owner-mismatch behave identically across get, update and delete.
func (s *taskServiceImpl) loadOwnedTask(
	ctx context.Context,
	ownerID, taskID int64,
	operation string,
) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Debug("task not found",
				"task_id", taskID,
				"operation", operation)
			return nil, ErrTaskNotFound
		}
		s.logger.Error("failed to load task",
			"error", err,
			"task_id", taskID)
		return nil, NewTaskServiceError(operation, "failed to load task", err)
	}

	if task.UserID != ownerID {
		s.logger.Warn("task ownership mismatch",
			"task_id", taskID,
			"owner_id", task.UserID,
			"caller_id", ownerID,
			"operation", operation)
		return nil, ErrTaskNotOwned
	}

	return task, nil
}
