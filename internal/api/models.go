package api

import (
	"time"

	"github.com/ntokozodev/user-tasks-api/internal/domain"
)

// TaskResponse is the wire representation of a task. The date_time field is
// formatted exactly as it was submitted ("2006-01-02 15:04:05").
type TaskResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DateTime    string `json:"date_time"`
}

// UserResponse is the wire representation of a user. The password hash is
// never exposed.
type UserResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// taskToResponse converts a domain.Task to its wire representation.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		DateTime:    task.DateTimeString(),
	}
}

// tasksToResponse converts a slice of tasks, returning an empty slice rather
// than nil so the JSON encoding is always an array.
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}
	return responses
}

// userToResponse converts a domain.User to its wire representation.
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}
