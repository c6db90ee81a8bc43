package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akulikov/tasklist/internal/pkg/validate"
	authsvc "github.com/akulikov/tasklist/internal/services/auth"
	listssvc "github.com/akulikov/tasklist/internal/services/lists"
	"github.com/akulikov/tasklist/internal/transport/http/dto"
	httperrors "github.com/akulikov/tasklist/internal/transport/http/errors"
)

type ListsHandler struct {
	service *listssvc.Service
}

func NewListsHandler(service *listssvc.Service) *ListsHandler {
	return &ListsHandler{service: service}
}

func (h *ListsHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	lists, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		handleListError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, lists)
}

func (h *ListsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.CreateListRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "title is required")
		return
	}

	list, err := h.service.Create(r.Context(), identity.UserID, req.Title)
	if err != nil {
		handleListError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, list)
}

func (h *ListsHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	var req dto.UpdateListRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "title is required")
		return
	}

	list, err := h.service.Update(r.Context(), identity.UserID, chi.URLParam(r, "listId"), req.Title)
	if err != nil {
		handleListError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, list)
}

func (h *ListsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	list, err := h.service.Delete(r.Context(), identity.UserID, chi.URLParam(r, "listId"))
	if err != nil {
		handleListError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, list)
}

func handleListError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, listssvc.ErrInvalidInput):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, listssvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "list not found or unauthorized")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
