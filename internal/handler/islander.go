package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"islandfeed/internal/httputil"
	"islandfeed/internal/model"
	"islandfeed/internal/service"
)

type IslanderHandler struct {
	islanderService *service.IslanderService
}

func NewIslanderHandler(islanderService *service.IslanderService) *IslanderHandler {
	return &IslanderHandler{islanderService: islanderService}
}

// List returns the whole cast catalog
// GET /islanders
func (h *IslanderHandler) List(w http.ResponseWriter, r *http.Request) {
	islanders, err := h.islanderService.List(r.Context())
	if err != nil {
		slog.Error("list islanders failed", "error", err)
		httputil.WriteInternalError(w, "Failed to list islanders")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, islanders)
}

// GetByID fetches one cast member
// GET /islanders/{id}
func (h *IslanderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid islander ID")
		return
	}

	islander, err := h.islanderService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrIslanderNotFound) {
			httputil.WriteNotFound(w, "Islander not found")
			return
		}
		slog.Error("get islander failed", "id", id, "error", err)
		httputil.WriteInternalError(w, "Failed to get islander")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, islander)
}
