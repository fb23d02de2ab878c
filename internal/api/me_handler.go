package api

import (
	"log/slog"
	"net/http"

	"github.com/ntokozodev/user-tasks-api/internal/api/shared"
	"github.com/ntokozodev/user-tasks-api/internal/service"
)

// MeHandler serves the token-scoped convenience routes. It resolves the
// caller from the bearer token instead of a path parameter and delegates to
// the same services as the path-keyed routes.
type MeHandler struct {
	userService service.UserService
	taskService service.TaskService
	logger      *slog.Logger
}

// NewMeHandler creates a new MeHandler
func NewMeHandler(
	userService service.UserService,
	taskService service.TaskService,
	logger *slog.Logger,
) *MeHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &MeHandler{
		userService: userService,
		taskService: taskService,
		logger:      logger.With("component", "me_handler"),
	}
}

// GetMe handles GET /api/me requests
func (h *MeHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err, "Failed to retrieve user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// ListMyTasks handles GET /api/me/tasks requests
func (h *MeHandler) ListMyTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}
