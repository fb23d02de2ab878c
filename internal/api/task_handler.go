package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ntokozodev/user-tasks-api/internal/api/shared"
	"github.com/ntokozodev/user-tasks-api/internal/service"
)

// CreateTaskRequest represents the request body for creating a new task
type CreateTaskRequest struct {
	Name        string `json:"name"        validate:"required,min=1"`
	Description string `json:"description"`
	DateTime    string `json:"date_time"   validate:"required"`
}

// UpdateTaskRequest represents the request body for a partial task update.
// Absent fields leave the stored values unchanged.
type UpdateTaskRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	DateTime    *string `json:"date_time,omitempty"`
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
		logger:      logger.With("component", "task_handler"),
	}
}

// CreateTask handles POST /api/users/{id}/tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	ownerID, err := getPathID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err, "Invalid user ID")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), ownerID, service.CreateTaskRequest{
		Name:        req.Name,
		Description: req.Description,
		DateTime:    req.DateTime,
	})
	if err != nil {
		HandleServiceError(w, r, err, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /api/users/{user_id}/tasks/{task_id} requests
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ownerID, taskID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), ownerID, taskID, service.UpdateTaskRequest{
		Name:        req.Name,
		Description: req.Description,
		DateTime:    req.DateTime,
	})
	if err != nil {
		HandleServiceError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// GetTask handles GET /api/users/{user_id}/tasks/{task_id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	ownerID, taskID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), ownerID, taskID)
	if err != nil {
		HandleServiceError(w, r, err, "Failed to retrieve task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// ListTasks handles GET /api/users/{user_id}/tasks requests.
// With page and size query parameters it returns one zero-based page sorted
// by ascending ID; without them it returns all of the user's tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	ownerID, err := getPathID(r, "user_id")
	if err != nil {
		HandleServiceError(w, r, err, "Invalid user ID")
		return
	}

	page, pageFound, err := getQueryInt(r, "page")
	if err != nil {
		HandleServiceError(w, r, err, "Invalid page parameter")
		return
	}
	size, sizeFound, err := getQueryInt(r, "size")
	if err != nil {
		HandleServiceError(w, r, err, "Invalid size parameter")
		return
	}

	var tasks []TaskResponse
	if pageFound || sizeFound {
		result, err := h.taskService.ListTasksPage(r.Context(), ownerID, page, size)
		if err != nil {
			HandleServiceError(w, r, err, "Failed to list tasks")
			return
		}
		tasks = tasksToResponse(result)
	} else {
		result, err := h.taskService.ListTasks(r.Context(), ownerID)
		if err != nil {
			HandleServiceError(w, r, err, "Failed to list tasks")
			return
		}
		tasks = tasksToResponse(result)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// DeleteTask handles DELETE /api/users/{user_id}/tasks/{task_id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	ownerID, taskID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), ownerID, taskID); err != nil {
		HandleServiceError(w, r, err, "Failed to delete task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// pathIDs extracts the user_id and task_id path parameters, writing an error
// response and returning false when either is invalid.
func (h *TaskHandler) pathIDs(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	ownerID, err := getPathID(r, "user_id")
	if err != nil {
		HandleServiceError(w, r, err, "Invalid user ID")
		return 0, 0, false
	}

	taskID, err := getPathID(r, "task_id")
	if err != nil {
		HandleServiceError(w, r, err, "Invalid task ID")
		return 0, 0, false
	}

	return ownerID, taskID, true
}
