package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/Fauli/screenshot-organizer/internal/handlers/mocks"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

func TestEventsHandler_StreamsChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockEventSource(ctrl)

	ch := make(chan storage.Change, 2)
	ch <- storage.Change{Topic: storage.TopicItems, Op: "insert", ID: "a"}
	ch <- storage.Change{Topic: storage.TopicPreferences, Op: "set"}
	close(ch)
	cancelled := false
	source.EXPECT().Subscribe(eventBuffer).Return((<-chan storage.Change)(ch), func() { cancelled = true })

	w := httptest.NewRecorder()
	NewEventsHandler(source).ServeHTTP(w, newRequest(http.MethodGet, "/api/events", ""))

	if got := w.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Content-Type = %q", got)
	}
	body := w.Body.String()
	for _, want := range []string{
		": connected\n\n",
		"event: change\ndata: {\"topic\":\"items\",\"op\":\"insert\",\"id\":\"a\"}\n\n",
		"event: change\ndata: {\"topic\":\"preferences\",\"op\":\"set\"}\n\n",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("stream missing %q in %q", want, body)
		}
	}
	if !cancelled {
		t.Error("subscription not cancelled")
	}
}

func TestEventsHandler_StopsWithClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockEventSource(ctrl)
	ch := make(chan storage.Change)
	source.EXPECT().Subscribe(gomock.Any()).Return((<-chan storage.Change)(ch), func() {})

	h := NewEventsHandler(source)
	h.heartbeat = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	req := newRequest(http.MethodGet, "/api/events", "").WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.ServeHTTP(w, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after the client went away")
	}
	if !strings.Contains(w.Body.String(), ": ping\n\n") {
		t.Errorf("stream missing heartbeat: %q", w.Body.String())
	}
}
