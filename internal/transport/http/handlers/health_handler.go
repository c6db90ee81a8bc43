package handlers

import (
	"net/http"

	httperrors "github.com/akulikov/tasklist/internal/transport/http/errors"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	httperrors.Write(w, http.StatusOK, map[string]bool{"ok": true})
}
