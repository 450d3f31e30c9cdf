package service_test

import (
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/Fauli/screenshot-organizer/internal/service"
	"github.com/Fauli/screenshot-organizer/internal/service/mocks"
	"github.com/Fauli/screenshot-organizer/internal/storage"
	storage_mocks "github.com/Fauli/screenshot-organizer/internal/storage/mocks"
)

func newPreferencesService(t *testing.T) (*service.PreferencesService, *storage_mocks.MockPreferenceStore, *mocks.MockProcessor) {
	t.Helper()
	ctrl := gomock.NewController(t)
	prefs := storage_mocks.NewMockPreferenceStore(ctrl)
	processor := mocks.NewMockProcessor(ctrl)
	return service.NewPreferencesService(prefs, processor), prefs, processor
}

func TestPreferencesService_UpdateValidation(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		update    service.PreferencesUpdate
		wantField string
	}{
		{name: "unknown mode", update: service.PreferencesUpdate{AIMode: strPtr("LOCAL")}, wantField: "ai_mode"},
		{name: "relative folder", update: service.PreferencesUpdate{SelectedFolder: strPtr("shots")}, wantField: "selected_folder"},
		{name: "missing folder", update: service.PreferencesUpdate{SelectedFolder: strPtr(filepath.Join(dir, "nope"))}, wantField: "selected_folder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newPreferencesService(t)

			_, err := svc.Update(testContext(), tt.update)
			var vErr *service.ValidationError
			if !errors.As(err, &vErr) || vErr.Field != tt.wantField {
				t.Errorf("Update() error = %v, want validation error on %s", err, tt.wantField)
			}
			if !errors.Is(err, service.ErrInvalidInput) {
				t.Errorf("Update() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestPreferencesService_Update(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		update    service.PreferencesUpdate
		mockSetup func(prefs *storage_mocks.MockPreferenceStore, processor *mocks.MockProcessor)
	}{
		{
			name:   "mode switch resets items",
			update: service.PreferencesUpdate{AIMode: strPtr("cloud")},
			mockSetup: func(prefs *storage_mocks.MockPreferenceStore, processor *mocks.MockProcessor) {
				prefs.EXPECT().SetAIMode(gomock.Any(), storage.AIModeCloud).Return(nil)
				processor.EXPECT().ResetAll(gomock.Any()).Return(3, nil)
			},
		},
		{
			name:      "same mode keeps items",
			update:    service.PreferencesUpdate{AIMode: strPtr("OCR_ONLY")},
			mockSetup: func(*storage_mocks.MockPreferenceStore, *mocks.MockProcessor) {},
		},
		{
			name:   "folder is stored cleaned",
			update: service.PreferencesUpdate{SelectedFolder: strPtr(dir + "/")},
			mockSetup: func(prefs *storage_mocks.MockPreferenceStore, _ *mocks.MockProcessor) {
				prefs.EXPECT().SetSelectedFolder(gomock.Any(), gomock.Eq(&dir)).Return(nil)
			},
		},
		{
			name:   "empty folder and key clear",
			update: service.PreferencesUpdate{SelectedFolder: strPtr(""), OpenAIAPIKey: strPtr("  ")},
			mockSetup: func(prefs *storage_mocks.MockPreferenceStore, _ *mocks.MockProcessor) {
				prefs.EXPECT().SetSelectedFolder(gomock.Any(), gomock.Nil()).Return(nil)
				prefs.EXPECT().SetOpenAIAPIKey(gomock.Any(), gomock.Nil()).Return(nil)
			},
		},
		{
			name: "flags",
			update: service.PreferencesUpdate{
				HideSolvedByDefault:    boolPtr(false),
				HideNoContentByDefault: boolPtr(false),
				AutoProcessOnStartup:   boolPtr(true),
				OpenAIAPIKey:           strPtr("sk-test"),
			},
			mockSetup: func(prefs *storage_mocks.MockPreferenceStore, _ *mocks.MockProcessor) {
				prefs.EXPECT().SetHideSolvedByDefault(gomock.Any(), false).Return(nil)
				prefs.EXPECT().SetHideNoContentByDefault(gomock.Any(), false).Return(nil)
				prefs.EXPECT().SetAutoProcessOnStartup(gomock.Any(), true).Return(nil)
				prefs.EXPECT().SetOpenAIAPIKey(gomock.Any(), gomock.Eq(strPtr("sk-test"))).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, prefs, processor := newPreferencesService(t)
			// Load once for the current state and once for the returned result.
			prefs.EXPECT().Load(gomock.Any()).Return(storage.DefaultPreferences(), nil).Times(2)
			tt.mockSetup(prefs, processor)

			if _, err := svc.Update(testContext(), tt.update); err != nil {
				t.Errorf("Update() error = %v", err)
			}
		})
	}
}

func TestPreferencesService_ResetFailure(t *testing.T) {
	svc, prefs, processor := newPreferencesService(t)
	prefs.EXPECT().Load(gomock.Any()).Return(storage.DefaultPreferences(), nil)
	prefs.EXPECT().SetAIMode(gomock.Any(), storage.AIModeCloud).Return(nil)
	processor.EXPECT().ResetAll(gomock.Any()).Return(0, errors.New("database is locked"))

	if _, err := svc.Update(testContext(), service.PreferencesUpdate{AIMode: strPtr("CLOUD")}); err == nil {
		t.Error("Update() error = nil, want reset failure")
	}
}

func TestPreferencesService_Seed(t *testing.T) {
	existing := "sk-saved"

	tests := []struct {
		name        string
		current     storage.Preferences
		apiKey      string
		autoProcess bool
		mockSetup   func(prefs *storage_mocks.MockPreferenceStore)
	}{
		{
			name:        "fills unset values",
			current:     storage.DefaultPreferences(),
			apiKey:      "sk-env",
			autoProcess: true,
			mockSetup: func(prefs *storage_mocks.MockPreferenceStore) {
				prefs.EXPECT().SetOpenAIAPIKey(gomock.Any(), gomock.Eq(strPtr("sk-env"))).Return(nil)
				prefs.EXPECT().SetAutoProcessOnStartup(gomock.Any(), true).Return(nil)
			},
		},
		{
			name:        "keeps saved key",
			current:     storage.Preferences{AIMode: storage.AIModeCloud, OpenAIAPIKey: &existing, AutoProcessOnStartup: true},
			apiKey:      "sk-env",
			autoProcess: true,
			mockSetup:   func(*storage_mocks.MockPreferenceStore) {},
		},
		{
			name:      "nothing configured",
			current:   storage.DefaultPreferences(),
			mockSetup: func(*storage_mocks.MockPreferenceStore) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, prefs, _ := newPreferencesService(t)
			prefs.EXPECT().Load(gomock.Any()).Return(tt.current, nil)
			tt.mockSetup(prefs)

			if err := svc.Seed(testContext(), tt.apiKey, tt.autoProcess); err != nil {
				t.Errorf("Seed() error = %v", err)
			}
		})
	}
}
