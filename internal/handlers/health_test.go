package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/Fauli/screenshot-organizer/internal/handlers/mocks"
)

func TestHealthHandler(t *testing.T) {
	dir := t.TempDir()
	folderAt := func(path string, err error) FolderResolver {
		return func(context.Context) (string, error) { return path, err }
	}

	tests := []struct {
		name       string
		pingErr    error
		folder     FolderResolver
		wantStatus int
		wantHealth string
		wantFolder string
	}{
		{name: "healthy", folder: folderAt(dir, nil), wantStatus: http.StatusOK, wantHealth: "healthy", wantFolder: "ok"},
		{name: "no folder selected", folder: folderAt("", nil), wantStatus: http.StatusOK, wantHealth: "healthy", wantFolder: "not_selected"},
		{name: "folder gone", folder: folderAt(filepath.Join(dir, "gone"), nil), wantStatus: http.StatusOK, wantHealth: "degraded", wantFolder: "unavailable"},
		{name: "folder lookup fails", folder: folderAt("", errors.New("locked")), wantStatus: http.StatusOK, wantHealth: "degraded", wantFolder: "unavailable"},
		{name: "database down", pingErr: errors.New("closed"), folder: folderAt(dir, nil), wantStatus: http.StatusServiceUnavailable, wantHealth: "unhealthy", wantFolder: "ok"},
		{name: "without folder check", wantStatus: http.StatusOK, wantHealth: "healthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			db := mocks.NewMockPinger(ctrl)
			db.EXPECT().PingContext(gomock.Any()).Return(tt.pingErr)

			w := httptest.NewRecorder()
			NewHealthHandler(db, tt.folder).ServeHTTP(w, newRequest(http.MethodGet, "/api/health", ""))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %v, want %v", w.Code, tt.wantStatus)
			}
			got := decodeBody[HealthResponse](t, w)
			if got.Status != tt.wantHealth {
				t.Errorf("health = %q, want %q", got.Status, tt.wantHealth)
			}
			if got.Checks["folder"] != tt.wantFolder {
				t.Errorf("folder check = %q, want %q", got.Checks["folder"], tt.wantFolder)
			}
			if got.Timestamp == "" {
				t.Error("timestamp missing")
			}
		})
	}
}
