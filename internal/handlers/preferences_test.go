package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/Fauli/screenshot-organizer/internal/handlers/mocks"
	"github.com/Fauli/screenshot-organizer/internal/service"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

func TestPreferencesHandler_Get(t *testing.T) {
	key := "sk-secret"
	folder := "/home/me/Pictures/Screenshots"
	prefs := storage.Preferences{
		SelectedFolder:      &folder,
		AIMode:              storage.AIModeCloud,
		HideSolvedByDefault: true,
		LastScanAt:          time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		OpenAIAPIKey:        &key,
	}

	ctrl := gomock.NewController(t)
	m := mocks.NewMockPreferencesService(ctrl)
	m.EXPECT().Get(gomock.Any()).Return(prefs, nil)

	w := httptest.NewRecorder()
	NewPreferencesHandler(m).Get(w, newRequest(http.MethodGet, "/api/preferences", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("Get() status = %v", w.Code)
	}
	if strings.Contains(w.Body.String(), key) {
		t.Error("Get() response leaks the api key")
	}
	got := decodeBody[PreferencesResponse](t, w)
	if !got.HasAPIKey || got.AIMode != "CLOUD" || got.SelectedFolder == nil || *got.SelectedFolder != folder {
		t.Errorf("Get() = %+v", got)
	}
	if got.LastScanAt == nil || !got.LastScanAt.Equal(prefs.LastScanAt) {
		t.Errorf("Get() last scan = %v", got.LastScanAt)
	}
}

func TestPreferencesHandler_Update(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mockSetup  func(m *mocks.MockPreferencesService)
		wantStatus int
	}{
		{
			name: "partial update",
			body: `{"ai_mode": "CLOUD", "openai_api_key": "sk-new"}`,
			mockSetup: func(m *mocks.MockPreferencesService) {
				m.EXPECT().Update(gomock.Any(), service.PreferencesUpdate{
					AIMode:       strPtr("CLOUD"),
					OpenAIAPIKey: strPtr("sk-new"),
				}).Return(storage.DefaultPreferences(), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "clear folder",
			body: `{"selected_folder": "", "hide_solved_by_default": false}`,
			mockSetup: func(m *mocks.MockPreferencesService) {
				m.EXPECT().Update(gomock.Any(), service.PreferencesUpdate{
					SelectedFolder:      strPtr(""),
					HideSolvedByDefault: boolPtr(false),
				}).Return(storage.DefaultPreferences(), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "invalid mode",
			body: `{"ai_mode": "LOCAL"}`,
			mockSetup: func(m *mocks.MockPreferencesService) {
				m.EXPECT().Update(gomock.Any(), gomock.Any()).
					Return(storage.Preferences{}, &service.ValidationError{Field: "ai_mode", Message: "must be OCR_ONLY or CLOUD"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad body",
			body:       `[`,
			mockSetup:  func(*mocks.MockPreferencesService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "reset failure",
			body: `{"ai_mode": "CLOUD"}`,
			mockSetup: func(m *mocks.MockPreferencesService) {
				m.EXPECT().Update(gomock.Any(), gomock.Any()).Return(storage.Preferences{}, errors.New("database is locked"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := mocks.NewMockPreferencesService(ctrl)
			tt.mockSetup(m)

			w := httptest.NewRecorder()
			NewPreferencesHandler(m).Update(w, newRequest(http.MethodPut, "/api/preferences", tt.body))

			if w.Code != tt.wantStatus {
				t.Errorf("Update() status = %v, want %v (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}
