package handlers

import (
	"net/http"

	"github.com/Fauli/screenshot-organizer/internal/service"
)

// SearchHandler serves GET /api/search.
type SearchHandler struct {
	search SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(search SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// ServeHTTP runs a full-text search over processed items.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	includeSolved, err := queryBool(r, "include_solved")
	if err != nil {
		handleServiceError(ctx, w, err, "Invalid query")
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleServiceError(ctx, w, err, "Invalid query")
		return
	}

	items, err := h.search.Search(ctx, service.SearchParams{
		Query:         r.URL.Query().Get("q"),
		IncludeSolved: includeSolved,
		Limit:         limit,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to search")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toItemList(items))
}

// InsightsHandler serves GET /api/insights.
type InsightsHandler struct {
	insights InsightsService
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(insights InsightsService) *InsightsHandler {
	return &InsightsHandler{insights: insights}
}

// ServeHTTP returns the catalog aggregates.
func (h *InsightsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	includeSolved, err := queryBool(r, "include_solved")
	if err != nil {
		handleServiceError(ctx, w, err, "Invalid query")
		return
	}

	in, err := h.insights.Get(ctx, includeSolved)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to compute insights")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toInsightsResponse(in))
}
