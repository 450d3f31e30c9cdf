package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Fauli/screenshot-organizer/internal/backup"
	"github.com/Fauli/screenshot-organizer/internal/contextutil"
)

// MaxBackupBytes caps an uploaded backup file.
const MaxBackupBytes = 64 << 20

// BackupHandler serves backup export and import.
type BackupHandler struct {
	backups BackupService
	now     func() time.Time
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backups BackupService) *BackupHandler {
	return &BackupHandler{backups: backups, now: time.Now}
}

// Export handles GET /api/backup and downloads the catalog as JSON.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var buf bytes.Buffer
	n, err := h.backups.Export(ctx, &buf)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to export backup")
		return
	}

	filename := fmt.Sprintf("screenshot-vault-%s.json", h.now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.ErrorContext(ctx, "failed to write backup", "error", err)
		return
	}
	logger.InfoContext(ctx, "backup exported", "screenshots", n)
}

// Import handles POST /api/backup with a backup file as the request body.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body := http.MaxBytesReader(w, r.Body, MaxBackupBytes)
	res, err := h.backups.Import(ctx, body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "Backup file too large")
		case errors.Is(err, backup.ErrInvalidBackup):
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid backup uploaded", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid backup file")
		default:
			handleServiceError(ctx, w, err, "Failed to import backup")
		}
		return
	}
	writeJSON(ctx, w, http.StatusOK, res)
}
