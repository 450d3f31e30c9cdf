package service_test

import (
	"errors"
	"fmt"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/Fauli/screenshot-organizer/internal/scanner"
	"github.com/Fauli/screenshot-organizer/internal/service"
	"github.com/Fauli/screenshot-organizer/internal/service/mocks"
	"github.com/Fauli/screenshot-organizer/internal/storage"
	storage_mocks "github.com/Fauli/screenshot-organizer/internal/storage/mocks"
)

func TestScanService_Scan(t *testing.T) {
	counts := scanner.Counts{Scanned: 3, New: 2, Skipped: 1}

	tests := []struct {
		name       string
		folder     *string
		fallback   string
		mockSetup  func(s *mocks.MockFolderScanner, p *storage_mocks.MockPreferenceStore)
		wantStatus service.ScanStatus
		wantCounts scanner.Counts
	}{
		{
			name:   "success records scan time",
			folder: strPtr("/shots"),
			mockSetup: func(s *mocks.MockFolderScanner, p *storage_mocks.MockPreferenceStore) {
				s.EXPECT().Scan(gomock.Any(), "/shots").Return(counts, nil)
				p.EXPECT().SetLastScanAt(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: service.ScanSuccess,
			wantCounts: counts,
		},
		{
			name:     "fallback folder",
			fallback: "/env/shots",
			mockSetup: func(s *mocks.MockFolderScanner, p *storage_mocks.MockPreferenceStore) {
				s.EXPECT().Scan(gomock.Any(), "/env/shots").Return(scanner.Counts{}, nil)
				p.EXPECT().SetLastScanAt(gomock.Any(), gomock.Any()).Return(errors.New("locked"))
			},
			wantStatus: service.ScanSuccess,
		},
		{
			name:       "no folder selected",
			folder:     strPtr("  "),
			mockSetup:  func(*mocks.MockFolderScanner, *storage_mocks.MockPreferenceStore) {},
			wantStatus: service.ScanNoFolderSelected,
		},
		{
			name:   "permission denied",
			folder: strPtr("/locked"),
			mockSetup: func(s *mocks.MockFolderScanner, p *storage_mocks.MockPreferenceStore) {
				s.EXPECT().Scan(gomock.Any(), "/locked").Return(scanner.Counts{}, fmt.Errorf("open /locked: %w", scanner.ErrPermissionDenied))
			},
			wantStatus: service.ScanPermissionLost,
		},
		{
			name:   "folder gone",
			folder: strPtr("/gone"),
			mockSetup: func(s *mocks.MockFolderScanner, p *storage_mocks.MockPreferenceStore) {
				s.EXPECT().Scan(gomock.Any(), "/gone").Return(scanner.Counts{}, scanner.ErrFolderNotFound)
			},
			wantStatus: service.ScanPermissionLost,
		},
		{
			name:   "generic error",
			folder: strPtr("/shots"),
			mockSetup: func(s *mocks.MockFolderScanner, p *storage_mocks.MockPreferenceStore) {
				s.EXPECT().Scan(gomock.Any(), "/shots").Return(scanner.Counts{}, errors.New("database is locked"))
			},
			wantStatus: service.ScanError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			s := mocks.NewMockFolderScanner(ctrl)
			p := storage_mocks.NewMockPreferenceStore(ctrl)

			prefs := storage.DefaultPreferences()
			prefs.SelectedFolder = tt.folder
			p.EXPECT().Load(gomock.Any()).Return(prefs, nil)
			tt.mockSetup(s, p)

			out := service.NewScanService(s, p, tt.fallback).Scan(testContext())
			if out.Status != tt.wantStatus {
				t.Errorf("Scan() status = %s, want %s (message %q)", out.Status, tt.wantStatus, out.Message)
			}
			if out.Counts != tt.wantCounts {
				t.Errorf("Scan() counts = %+v, want %+v", out.Counts, tt.wantCounts)
			}
			if tt.wantStatus == service.ScanError && out.Message == "" {
				t.Error("Scan() error outcome has no message")
			}
		})
	}
}

func TestScanService_PrefsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := storage_mocks.NewMockPreferenceStore(ctrl)
	p.EXPECT().Load(gomock.Any()).Return(storage.Preferences{}, errors.New("disk I/O error"))

	out := service.NewScanService(mocks.NewMockFolderScanner(ctrl), p, "").Scan(testContext())
	if out.Status != service.ScanError {
		t.Errorf("Scan() status = %s, want %s", out.Status, service.ScanError)
	}
}
