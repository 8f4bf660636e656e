package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskman-api/internal/api/shared"
	"github.com/phrazzld/taskman-api/internal/domain"
	"github.com/phrazzld/taskman-api/internal/platform/logger"
	"github.com/phrazzld/taskman-api/internal/service"
	"github.com/phrazzld/taskman-api/internal/store"
)

// Query parameters accepted by the list endpoint.
const (
	queryParamSearchTerm = "searchTerm"
	queryParamStatus     = "status"
)

// TaskHandler handles task-related HTTP requests. Every route requires the
// auth middleware to have placed the caller's user ID in the context.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks handles GET /api/tasks with optional searchTerm and status filters.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	filter, err := parseTaskFilter(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskService.SearchTasks(r.Context(), userID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CreateTask handles POST /api/tasks. New tasks always start as CREATED.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := decodeBody(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), userID, req.Title, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// DeleteTask handles DELETE /api/tasks/{id}. It responds 204 on success.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateTaskStatus handles PATCH /api/tasks/{id}/status.
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskStatusRequest
	if err := decodeBody(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.UpdateTaskStatus(r.Context(), userID, taskID, domain.TaskStatus(req.Status))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task status")
		return
	}

	logger.FromContext(r.Context()).Debug("task status changed",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// parseTaskFilter reads the list query parameters. An unknown status is a
// validation error rather than an empty result.
func parseTaskFilter(r *http.Request) (store.TaskFilter, error) {
	query := r.URL.Query()
	filter := store.TaskFilter{SearchTerm: query.Get(queryParamSearchTerm)}

	if raw := query.Get(queryParamStatus); raw != "" {
		status, err := domain.ParseTaskStatus(raw)
		if err != nil {
			verr := &domain.ValidationError{}
			verr.Add(queryParamStatus, statusChoices())
			return store.TaskFilter{}, verr
		}
		filter.Status = &status
	}

	return filter, nil
}
