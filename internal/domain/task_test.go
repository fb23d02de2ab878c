package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntokozodev/user-tasks-api/internal/domain"
)

func TestNewTask(t *testing.T) {
	tests := []struct {
		name        string
		userID      int64
		taskName    string
		description string
		dateTime    string
		expectError error
	}{
		{
			name:        "valid task",
			userID:      1,
			taskName:    "write report",
			description: "quarterly report",
			dateTime:    "2026-09-01 10:30:00",
		},
		{
			name:        "empty description is allowed",
			userID:      1,
			taskName:    "standup",
			description: "",
			dateTime:    "2026-09-01 09:00:00",
		},
		{
			name:        "malformed date-time",
			userID:      1,
			taskName:    "write report",
			dateTime:    "2026/09/01 10:30:00",
			expectError: domain.ErrInvalidDateTime,
		},
		{
			name:        "date without time",
			userID:      1,
			taskName:    "write report",
			dateTime:    "2026-09-01",
			expectError: domain.ErrInvalidDateTime,
		},
		{
			name:        "empty date-time",
			userID:      1,
			taskName:    "write report",
			dateTime:    "",
			expectError: domain.ErrInvalidDateTime,
		},
		{
			name:        "empty name",
			userID:      1,
			taskName:    "",
			dateTime:    "2026-09-01 10:30:00",
			expectError: domain.ErrEmptyTaskName,
		},
		{
			name:        "missing owner",
			userID:      0,
			taskName:    "write report",
			dateTime:    "2026-09-01 10:30:00",
			expectError: domain.ErrEmptyTaskOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := domain.NewTask(tt.userID, tt.taskName, tt.description, tt.dateTime)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, task)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.userID, task.UserID)
			assert.Equal(t, tt.taskName, task.Name)
			assert.Equal(t, tt.description, task.Description)
			assert.Equal(t, domain.TaskStatusPending, task.Status)
			assert.EqualValues(t, 0, task.ID, "ID is assigned by the store")
		})
	}
}

func TestParseDateTimeRoundTrip(t *testing.T) {
	// The wire format must survive a parse/format round trip unchanged.
	inputs := []string{
		"2026-09-01 10:30:00",
		"2020-01-01 00:00:00",
		"1999-12-31 23:59:59",
	}

	for _, input := range inputs {
		parsed, err := domain.ParseDateTime(input)
		require.NoError(t, err)
		assert.Equal(t, input, parsed.Format(domain.DateTimeLayout))
	}
}

func TestTaskIsDue(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		scheduledAt time.Time
		due         bool
	}{
		{"past schedule is due", now.Add(-time.Minute), true},
		{"future schedule is not due", now.Add(time.Minute), false},
		{"exactly now is not due", now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &domain.Task{ScheduledAt: tt.scheduledAt}
			assert.Equal(t, tt.due, task.IsDue(now))
		})
	}
}

func TestTaskMarkDone(t *testing.T) {
	task, err := domain.NewTask(1, "write report", "", "2026-09-01 10:30:00")
	require.NoError(t, err)

	task.MarkDone()
	assert.Equal(t, domain.TaskStatusDone, task.Status)

	// Marking done twice is idempotent.
	task.MarkDone()
	assert.Equal(t, domain.TaskStatusDone, task.Status)
}

func TestTaskDateTimeString(t *testing.T) {
	task, err := domain.NewTask(1, "write report", "", "2026-09-01 10:30:00")
	require.NoError(t, err)

	assert.Equal(t, "2026-09-01 10:30:00", task.DateTimeString())
}
