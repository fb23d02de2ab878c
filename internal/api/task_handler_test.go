package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntokozodev/user-tasks-api/internal/domain"
	"github.com/ntokozodev/user-tasks-api/internal/service"
)

// mockTaskService implements service.TaskService with function fields.
type mockTaskService struct {
	createTaskFn    func(ctx context.Context, ownerID int64, req service.CreateTaskRequest) (*domain.Task, error)
	updateTaskFn    func(ctx context.Context, ownerID, taskID int64, req service.UpdateTaskRequest) (*domain.Task, error)
	getTaskFn       func(ctx context.Context, ownerID, taskID int64) (*domain.Task, error)
	listTasksFn     func(ctx context.Context, ownerID int64) ([]*domain.Task, error)
	listTasksPageFn func(ctx context.Context, ownerID int64, page, size int) ([]*domain.Task, error)
	deleteTaskFn    func(ctx context.Context, ownerID, taskID int64) error
}

func (m *mockTaskService) CreateTask(
	ctx context.Context,
	ownerID int64,
	req service.CreateTaskRequest,
) (*domain.Task, error) {
	return m.createTaskFn(ctx, ownerID, req)
}

func (m *mockTaskService) UpdateTask(
	ctx context.Context,
	ownerID, taskID int64,
	req service.UpdateTaskRequest,
) (*domain.Task, error) {
	return m.updateTaskFn(ctx, ownerID, taskID, req)
}

func (m *mockTaskService) GetTask(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	return m.getTaskFn(ctx, ownerID, taskID)
}

func (m *mockTaskService) ListTasks(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	return m.listTasksFn(ctx, ownerID)
}

func (m *mockTaskService) ListTasksPage(
	ctx context.Context,
	ownerID int64,
	page, size int,
) ([]*domain.Task, error) {
	return m.listTasksPageFn(ctx, ownerID, page, size)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, ownerID, taskID int64) error {
	return m.deleteTaskFn(ctx, ownerID, taskID)
}

// taskRouter mounts the handler on the same route patterns the server uses.
func taskRouter(svc service.TaskService) http.Handler {
	h := NewTaskHandler(svc, nil)

	r := chi.NewRouter()
	r.Post("/api/users/{id}/tasks", h.CreateTask)
	r.Get("/api/users/{user_id}/tasks", h.ListTasks)
	r.Get("/api/users/{user_id}/tasks/{task_id}", h.GetTask)
	r.Put("/api/users/{user_id}/tasks/{task_id}", h.UpdateTask)
	r.Delete("/api/users/{user_id}/tasks/{task_id}", h.DeleteTask)
	return r
}

func sampleTask() *domain.Task {
	return &domain.Task{
		ID:          7,
		UserID:      1,
		Name:        "write report",
		Description: "quarterly report",
		ScheduledAt: time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
		Status:      domain.TaskStatusPending,
	}
}

func TestCreateTaskHandler(t *testing.T) {
	t.Run("success returns the task as submitted", func(t *testing.T) {
		svc := &mockTaskService{
			createTaskFn: func(ctx context.Context, ownerID int64, req service.CreateTaskRequest) (*domain.Task, error) {
				assert.EqualValues(t, 1, ownerID)
				task, err := domain.NewTask(ownerID, req.Name, req.Description, req.DateTime)
				require.NoError(t, err)
				task.ID = 7
				return task, nil
			},
		}

		body := `{"name":"write report","description":"quarterly report","date_time":"2026-09-01 10:30:00"}`
		req := httptest.NewRequest(http.MethodPost, "/api/users/1/tasks", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		taskRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.EqualValues(t, 7, resp.ID)
		assert.Equal(t, "write report", resp.Name)
		assert.Equal(t, "quarterly report", resp.Description)
		assert.Equal(t, "2026-09-01 10:30:00", resp.DateTime)
	})

	t.Run("unknown owner returns 404", func(t *testing.T) {
		svc := &mockTaskService{
			createTaskFn: func(ctx context.Context, ownerID int64, req service.CreateTaskRequest) (*domain.Task, error) {
				return nil, service.ErrUserNotFound
			},
		}

		body := `{"name":"write report","date_time":"2026-09-01 10:30:00"}`
		req := httptest.NewRequest(http.MethodPost, "/api/users/99/tasks", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		taskRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed date-time returns 422", func(t *testing.T) {
		svc := &mockTaskService{
			createTaskFn: func(ctx context.Context, ownerID int64, req service.CreateTaskRequest) (*domain.Task, error) {
				_, err := domain.ParseDateTime(req.DateTime)
				return nil, err
			},
		}

		body := `{"name":"write report","date_time":"not-a-date"}`
		req := httptest.NewRequest(http.MethodPost, "/api/users/1/tasks", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		taskRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("missing required fields return 400", func(t *testing.T) {
		svc := &mockTaskService{}

		req := httptest.NewRequest(http.MethodPost, "/api/users/1/tasks", bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()
		taskRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		svc := &mockTaskService{}

		req := httptest.NewRequest(http.MethodPost, "/api/users/1/tasks", bytes.NewBufferString(`{`))
		rec := httptest.NewRecorder()
		taskRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-numeric user ID returns 422", func(t *testing.T) {
		svc := &mockTaskService{}

		body := `{"name":"write report","date_time":"2026-09-01 10:30:00"}`
		req := httptest.NewRequest(http.MethodPost, "/api/users/abc/tasks", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		taskRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestGetTaskHandler(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"found", nil, http.StatusOK},
		{"missing task", service.ErrTaskNotFound, http.StatusNotFound},
		{"owner mismatch", service.ErrTaskNotOwned, http.StatusForbidden},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockTaskService{
				getTaskFn: func(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return sampleTask(), nil
				},
			}

			req := httptest.NewRequest(http.MethodGet, "/api/users/1/tasks/7", nil)
			rec := httptest.NewRecorder()
			taskRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestUpdateTaskHandler(t *testing.T) {
	t.Run("partial body forwards only present fields", func(t *testing.T) {
		var gotReq service.UpdateTaskRequest
		svc := &mockTaskService{
			updateTaskFn: func(ctx context.Context, ownerID, taskID int64, req service.UpdateTaskRequest) (*domain.Task, error) {
				gotReq = req
				task := sampleTask()
				task.Name = *req.Name
				return task, nil
			},
		}

		body := `{"name":"renamed"}`
		req := httptest.NewRequest(http.MethodPut, "/api/users/1/tasks/7", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		taskRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotReq.Name)
		assert.Equal(t, "renamed", *gotReq.Name)
		assert.Nil(t, gotReq.Description)
		assert.Nil(t, gotReq.DateTime)
	})

	t.Run("owner mismatch returns 403", func(t *testing.T) {
		svc := &mockTaskService{
			updateTaskFn: func(ctx context.Context, ownerID, taskID int64, req service.UpdateTaskRequest) (*domain.Task, error) {
				return nil, service.ErrTaskNotOwned
			},
		}

		req := httptest.NewRequest(http.MethodPut, "/api/users/1/tasks/7", bytes.NewBufferString(`{"name":"x"}`))
		rec := httptest.NewRecorder()
		taskRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestDeleteTaskHandler(t *testing.T) {
	t.Run("success returns 204 with no body", func(t *testing.T) {
		svc := &mockTaskService{
			deleteTaskFn: func(ctx context.Context, ownerID, taskID int64) error {
				return nil
			},
		}

		req := httptest.NewRequest(http.MethodDelete, "/api/users/1/tasks/7", nil)
		rec := httptest.NewRecorder()
		taskRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.Bytes())
	})

	t.Run("missing task returns 404", func(t *testing.T) {
		svc := &mockTaskService{
			deleteTaskFn: func(ctx context.Context, ownerID, taskID int64) error {
				return service.ErrTaskNotFound
			},
		}

		req := httptest.NewRequest(http.MethodDelete, "/api/users/1/tasks/7", nil)
		rec := httptest.NewRecorder()
		taskRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListTasksHandler(t *testing.T) {
	t.Run("without paging returns all tasks", func(t *testing.T) {
		svc := &mockTaskService{
			listTasksFn: func(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
				first := sampleTask()
				second := sampleTask()
				second.ID = 8
				return []*domain.Task{first, second}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/users/1/tasks", nil)
		rec := httptest.NewRecorder()
		taskRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp []TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.EqualValues(t, 7, resp[0].ID)
		assert.EqualValues(t, 8, resp[1].ID)
	})

	t.Run("with paging forwards page and size", func(t *testing.T) {
		var gotPage, gotSize int
		svc := &mockTaskService{
			listTasksPageFn: func(ctx context.Context, ownerID int64, page, size int) ([]*domain.Task, error) {
				gotPage, gotSize = page, size
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/users/1/tasks?page=2&size=10", nil)
		rec := httptest.NewRecorder()
		taskRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, gotPage)
		assert.Equal(t, 10, gotSize)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("negative page returns 422", func(t *testing.T) {
		svc := &mockTaskService{
			listTasksPageFn: func(ctx context.Context, ownerID int64, page, size int) ([]*domain.Task, error) {
				return nil, errors.Join(domain.ErrValidation, errors.New("page index cannot be negative"))
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/users/1/tasks?page=-1&size=10", nil)
		rec := httptest.NewRecorder()
		taskRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed page parameter returns 422", func(t *testing.T) {
		svc := &mockTaskService{}

		req := httptest.NewRequest(http.MethodGet, "/api/users/1/tasks?page=abc", nil)
		rec := httptest.NewRecorder()
		taskRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("empty result is a JSON array", func(t *testing.T) {
		svc := &mockTaskService{
			listTasksFn: func(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/users/1/tasks", nil)
		rec := httptest.NewRecorder()
		taskRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}
