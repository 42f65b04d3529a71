package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Skarbonka1/serwerfinal/internal/api/middleware"
	"github.com/Skarbonka1/serwerfinal/internal/api/shared"
	"github.com/Skarbonka1/serwerfinal/internal/platform/logger"
	"github.com/Skarbonka1/serwerfinal/internal/service"
	"github.com/go-chi/chi/v5"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// taskIDFromURL parses the {id} route parameter.
func taskIDFromURL(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// CreateTask handles POST /tasks requests. The task starts as a draft,
// invisible to everyone but its creator.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := h.taskService.CreateDraft(r.Context(), service.CreateTaskInput{
		Title:           req.Title,
		ContentState:    req.ContentState,
		CreatorID:       userID,
		LeaderID:        req.LeaderID,
		Deadline:        req.Deadline,
		Importance:      req.Importance,
		AssignedUserIDs: req.AssignedUserIDs,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task created", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// GetTask handles GET /tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDFromURL(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /tasks/{id} requests. Status and publication
// date are never touched here, a draft stays a draft and a published
// task stays published.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDFromURL(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := h.taskService.Update(r.Context(), id, service.UpdateTaskInput{
		Title:           req.Title,
		ContentState:    req.ContentState,
		LeaderID:        req.LeaderID,
		Deadline:        req.Deadline,
		Importance:      req.Importance,
		AssignedUserIDs: req.AssignedUserIDs,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateDeadline handles PUT /tasks/{id}/deadline requests. The
// deadline field is tri-state: absent leaves the stored value untouched,
// an explicit null clears it, a timestamp sets it.
func (h *TaskHandler) UpdateDeadline(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDFromURL(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req UpdateDeadlineRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Deadline.Set {
		if err := h.taskService.UpdateDeadline(r.Context(), id, req.Deadline.Value); err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
				GetSafeErrorMessage(err), err)
			return
		}
	}

	task, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// PublishTask handles POST /tasks/{id}/publish requests. Publication is
// one-way and commits before any notification is attempted, so a push
// outage can never undo it.
func (h *TaskHandler) PublishTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := taskIDFromURL(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskService.Publish(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task published", slog.Int64("task_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDFromURL(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCalendar handles GET /calendar requests. The view contains the
// published tasks the caller created or is assigned to plus the caller's
// own drafts, newest publication first.
func (h *TaskHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	entries, err := h.taskService.Calendar(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	response := make([]CalendarEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, calendarEntryToResponse(entry))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetAssignees handles GET /tasks/{id}/assignees requests.
func (h *TaskHandler) GetAssignees(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDFromURL(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	ids, err := h.taskService.Assignees(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	if ids == nil {
		ids = []int64{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string][]int64{"assignedUserIds": ids})
}
