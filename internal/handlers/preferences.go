package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
	"github.com/Fauli/screenshot-organizer/internal/service"
)

// PreferencesHandler serves the preference endpoints.
type PreferencesHandler struct {
	prefs PreferencesService
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(prefs PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs}
}

// Get handles GET /api/preferences.
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := h.prefs.Get(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load preferences")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toPreferencesResponse(p))
}

// Update handles PUT /api/preferences. Switching the AI mode resets every
// item for reprocessing.
func (h *PreferencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.prefs.Update(ctx, service.PreferencesUpdate{
		SelectedFolder:         req.SelectedFolder,
		AIMode:                 req.AIMode,
		HideSolvedByDefault:    req.HideSolvedByDefault,
		HideNoContentByDefault: req.HideNoContentByDefault,
		OpenAIAPIKey:           req.OpenAIAPIKey,
		AutoProcessOnStartup:   req.AutoProcessOnStartup,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to update preferences")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toPreferencesResponse(p))
}
