package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
)

const (
	eventBuffer      = 32
	defaultHeartbeat = 25 * time.Second
)

// EventsHandler streams store changes as Server-Sent Events.
type EventsHandler struct {
	source    EventSource
	heartbeat time.Duration
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(source EventSource) *EventsHandler {
	return &EventsHandler{source: source, heartbeat: defaultHeartbeat}
}

// ServeHTTP handles GET /api/events. Each change is sent as a "change" event
// with a JSON payload; comment lines keep idle connections open.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.ErrorContext(ctx, "streaming not supported by response writer")
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	changes, cancel := h.source.Subscribe(eventBuffer)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case c, ok := <-changes:
			if !ok {
				return
			}
			data, err := json.Marshal(c)
			if err != nil {
				logger.ErrorContext(ctx, "failed to encode change", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: change\ndata: %s\n\n", data); err != nil {
				logger.DebugContext(ctx, "event stream closed", "error", err)
				return
			}
			flusher.Flush()
		}
	}
}
