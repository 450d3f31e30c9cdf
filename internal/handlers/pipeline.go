package handlers

import (
	"net/http"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
	"github.com/Fauli/screenshot-organizer/internal/orchestrator"
)

// PipelineHandler serves the scan and processing endpoints.
type PipelineHandler struct {
	pipeline PipelineService
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(pipeline PipelineService) *PipelineHandler {
	return &PipelineHandler{pipeline: pipeline}
}

// QueuedResponse reports whether background work was queued.
type QueuedResponse struct {
	Queued bool `json:"queued"`
}

// ActivityResponse reports which background jobs are queued or running.
type ActivityResponse struct {
	Scanning   bool `json:"scanning"`
	Processing bool `json:"processing"`
}

// ProgressResponse is the processing snapshot with queue activity.
type ProgressResponse struct {
	orchestrator.Progress
	Activity ActivityResponse `json:"activity"`
}

// Scan handles POST /api/scan. With ?process=true a processing run follows the scan.
func (h *PipelineHandler) Scan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	process, err := queryBool(r, "process")
	if err != nil {
		handleServiceError(ctx, w, err, "Invalid query")
		return
	}
	thenProcess := process != nil && *process

	if !h.pipeline.RequestScan(thenProcess) {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "scan not queued")
		writeError(w, http.StatusServiceUnavailable, "Job queue unavailable")
		return
	}
	writeJSON(ctx, w, http.StatusAccepted, QueuedResponse{Queued: true})
}

// Process handles POST /api/process with an optional ?batch_size=.
func (h *PipelineHandler) Process(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	size, err := queryInt(r, "batch_size")
	if err != nil {
		handleServiceError(ctx, w, err, "Invalid query")
		return
	}
	if size < 0 {
		writeError(w, http.StatusBadRequest, "batch_size cannot be negative")
		return
	}

	if !h.pipeline.RequestProcess(size) {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "processing not queued")
		writeError(w, http.StatusServiceUnavailable, "Job queue unavailable")
		return
	}
	writeJSON(ctx, w, http.StatusAccepted, QueuedResponse{Queued: true})
}

// Progress handles GET /api/progress.
func (h *PipelineHandler) Progress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.pipeline.Progress(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to get progress")
		return
	}
	activity := h.pipeline.Activity()
	writeJSON(ctx, w, http.StatusOK, ProgressResponse{
		Progress: p,
		Activity: ActivityResponse{
			Scanning:   activity.Scanning,
			Processing: activity.Processing,
		},
	})
}
