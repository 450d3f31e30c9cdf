package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
)

// FolderResolver returns the folder scans read from, or "" when none is selected.
type FolderResolver func(ctx context.Context) (string, error)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	db                 Pinger
	folder             FolderResolver
	healthCheckTimeout time.Duration
	now                func() time.Time
}

// NewHealthHandler creates a new HealthHandler. folder may be nil to skip the folder check.
func NewHealthHandler(db Pinger, folder FolderResolver) *HealthHandler {
	return &HealthHandler{
		db:                 db,
		folder:             folder,
		healthCheckTimeout: 5 * time.Second,
		now:                time.Now,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// Returns 200 OK when the database answers, and 503 Service Unavailable when
// it does not. A missing screenshot folder only degrades the status.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string
	status := "healthy"
	httpStatus := http.StatusOK

	if h.checkDatabase(checkCtx, logger) {
		checks["database"] = "ok"
	} else {
		checks["database"] = "error"
		issues = append(issues, "database_unavailable")
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	if h.folder != nil {
		folderStatus := h.checkFolder(checkCtx, logger)
		checks["folder"] = folderStatus
		if folderStatus == "unavailable" {
			issues = append(issues, "folder_unavailable")
			if status == "healthy" {
				status = "degraded"
			}
		}
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	}
	writeJSON(ctx, w, httpStatus, response)
}

func (h *HealthHandler) checkDatabase(ctx context.Context, logger *slog.Logger) bool {
	if err := h.db.PingContext(ctx); err != nil {
		logger.WarnContext(ctx, "database health check failed", "error", err)
		return false
	}
	return true
}

func (h *HealthHandler) checkFolder(ctx context.Context, logger *slog.Logger) string {
	folder, err := h.folder(ctx)
	if err != nil {
		logger.WarnContext(ctx, "failed to resolve screenshot folder", "error", err)
		return "unavailable"
	}
	if folder == "" {
		return "not_selected"
	}
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		logger.WarnContext(ctx, "screenshot folder unavailable", "folder", folder, "error", err)
		return "unavailable"
	}
	return "ok"
}
