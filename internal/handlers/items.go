package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
	"github.com/Fauli/screenshot-organizer/internal/service"
)

// ItemsHandler serves the catalog item endpoints.
type ItemsHandler struct {
	items ItemService
}

// NewItemsHandler creates a new ItemsHandler.
func NewItemsHandler(items ItemService) *ItemsHandler {
	return &ItemsHandler{items: items}
}

// SolvedRequest marks an item solved or unsolved.
type SolvedRequest struct {
	Solved *bool `json:"solved"`
}

// ResetResponse reports how many items a reset touched.
type ResetResponse struct {
	Reset int `json:"reset"`
}

func itemID(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	includeSolved, err := queryBool(r, "include_solved")
	if err != nil {
		handleServiceError(ctx, w, err, "Invalid query")
		return
	}
	includeNoContent, err := queryBool(r, "include_no_content")
	if err != nil {
		handleServiceError(ctx, w, err, "Invalid query")
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleServiceError(ctx, w, err, "Invalid query")
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		handleServiceError(ctx, w, err, "Invalid query")
		return
	}

	items, err := h.items.List(ctx, service.ListParams{
		Filter:           q.Get("filter"),
		IncludeSolved:    includeSolved,
		IncludeNoContent: includeNoContent,
		Domain:           q.Get("domain"),
		Type:             q.Get("type"),
		Action:           q.Get("action"),
		Topic:            q.Get("topic"),
		Period:           q.Get("period"),
		Limit:            limit,
		Offset:           offset,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to list items")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toItemList(items))
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	detail, err := h.items.Get(ctx, itemID(r))
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to get item")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toItemDetailResponse(detail))
}

// SetSolved handles POST /api/items/{id}/solved.
func (h *ItemsHandler) SetSolved(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SolvedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Solved == nil {
		writeError(w, http.StatusBadRequest, "solved is required")
		return
	}

	if err := h.items.SetSolved(ctx, itemID(r), *req.Solved); err != nil {
		handleServiceError(ctx, w, err, "Failed to update item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reprocess handles POST /api/items/{id}/reprocess.
func (h *ItemsHandler) Reprocess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.items.Reprocess(ctx, itemID(r)); err != nil {
		handleServiceError(ctx, w, err, "Failed to reprocess item")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.items.Delete(ctx, itemID(r)); err != nil {
		handleServiceError(ctx, w, err, "Failed to delete item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetAll handles POST /api/reset.
func (h *ItemsHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n, err := h.items.ResetAll(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to reset items")
		return
	}
	writeJSON(ctx, w, http.StatusOK, ResetResponse{Reset: n})
}

// ResetStuck handles POST /api/reset-stuck.
func (h *ItemsHandler) ResetStuck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n, err := h.items.ResetStuck(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to reset stuck items")
		return
	}
	writeJSON(ctx, w, http.StatusOK, ResetResponse{Reset: n})
}
