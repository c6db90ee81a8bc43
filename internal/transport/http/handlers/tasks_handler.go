package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akulikov/tasklist/internal/pkg/validate"
	authsvc "github.com/akulikov/tasklist/internal/services/auth"
	taskssvc "github.com/akulikov/tasklist/internal/services/tasks"
	"github.com/akulikov/tasklist/internal/transport/http/dto"
	httperrors "github.com/akulikov/tasklist/internal/transport/http/errors"
)

type TasksHandler struct {
	service *taskssvc.Service
}

func NewTasksHandler(service *taskssvc.Service) *TasksHandler {
	return &TasksHandler{service: service}
}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	tasks, err := h.service.List(r.Context(), identity.UserID, chi.URLParam(r, "listId"))
	if err != nil {
		handleTaskError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, tasks)
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "title is required")
		return
	}

	task, err := h.service.Create(r.Context(), identity.UserID, chi.URLParam(r, "listId"), req.Title)
	if err != nil {
		handleTaskError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, task)
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.UpdateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	task, err := h.service.Update(
		r.Context(),
		identity.UserID,
		chi.URLParam(r, "listId"),
		chi.URLParam(r, "taskId"),
		req.Title,
		req.Completed,
	)
	if err != nil {
		handleTaskError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, task)
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	task, err := h.service.Delete(r.Context(), identity.UserID, chi.URLParam(r, "listId"), chi.URLParam(r, "taskId"))
	if err != nil {
		handleTaskError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, task)
}

func handleTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, taskssvc.ErrInvalidInput):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, taskssvc.ErrListNotFound):
		writeNotFound(w, "NOT_FOUND", "list not found or unauthorized")
	case errors.Is(err, taskssvc.ErrTaskNotFound):
		writeNotFound(w, "NOT_FOUND", "task not found or unauthorized")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
