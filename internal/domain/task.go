package domain

import (
	"errors"
	"fmt"
	"time"
)

// DateTimeLayout is the wire and storage format for task schedule times.
// It is the Go equivalent of the "yyyy-MM-dd HH:mm:ss" pattern the API
// has always accepted; any deviation from it is a validation error.
const DateTimeLayout = "2006-01-02 15:04:05"

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusDone    TaskStatus = "done"
)

// Common validation errors for Task
var (
	ErrEmptyTaskName     = errors.New("task name cannot be empty")
	ErrEmptyTaskOwner    = errors.New("task owner ID cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// Task represents a unit of work owned by exactly one user. The owner is
// set at creation and never reassigned; status starts at pending and only
// the periodic sweep moves it to done.
type Task struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	Status      TaskStatus `json:"status"`
	Version     int64      `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user. The schedule is parsed
// from its wire format, the status is set to pending, and the ID is left
// zero until the store assigns one.
// Returns an error if the date-time string is malformed or validation fails.
func NewTask(userID int64, name, description, dateTime string) (*Task, error) {
	scheduledAt, err := ParseDateTime(dateTime)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &Task{
		UserID:      userID,
		Name:        name,
		Description: description,
		ScheduledAt: scheduledAt,
		Status:      TaskStatusPending,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.UserID <= 0 {
		return ErrEmptyTaskOwner
	}

	if t.Name == "" {
		return ErrEmptyTaskName
	}

	if !isValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	return nil
}

// IsDue reports whether the task's scheduled time is strictly before now.
func (t *Task) IsDue(now time.Time) bool {
	return t.ScheduledAt.Before(now)
}

// MarkDone transitions the task to done and updates the UpdatedAt timestamp.
// The transition is idempotent.
func (t *Task) MarkDone() {
	t.Status = TaskStatusDone
	t.UpdatedAt = time.Now().UTC()
}

// DateTimeString returns the schedule formatted in the wire layout, exactly
// as it was submitted.
func (t *Task) DateTimeString() string {
	return t.ScheduledAt.Format(DateTimeLayout)
}

// ParseDateTime parses a date-time string in the wire layout.
// Returns ErrInvalidDateTime if the string does not match it exactly.
func ParseDateTime(value string) (time.Time, error) {
	parsed, err := time.Parse(DateTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, value)
	}
	return parsed, nil
}

// isValidTaskStatus checks if the given status is a valid TaskStatus.
func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusDone:
		return true
	default:
		return false
	}
}
