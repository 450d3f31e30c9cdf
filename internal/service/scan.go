package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_folder_scanner.go -package=mocks github.com/Fauli/screenshot-organizer/internal/service FolderScanner

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
	"github.com/Fauli/screenshot-organizer/internal/scanner"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

// FolderScanner ingests the images in a folder.
type FolderScanner interface {
	Scan(ctx context.Context, folder string) (scanner.Counts, error)
}

// ScanStatus is the kind of a scan outcome.
type ScanStatus string

const (
	ScanSuccess          ScanStatus = "success"
	ScanNoFolderSelected ScanStatus = "no_folder_selected"
	ScanPermissionLost   ScanStatus = "permission_lost"
	ScanError            ScanStatus = "error"
)

// ScanOutcome is the result of one scan. Counts is only meaningful on success
// and Message only on error.
type ScanOutcome struct {
	Status  ScanStatus
	Counts  scanner.Counts
	Message string
}

// ScanService scans the selected folder.
type ScanService struct {
	scanner  FolderScanner
	prefs    storage.PreferenceStore
	fallback string
	now      func() time.Time
}

// NewScanService creates a ScanService. fallbackFolder is used when no folder
// preference is stored and may be empty.
func NewScanService(s FolderScanner, prefs storage.PreferenceStore, fallbackFolder string) *ScanService {
	return &ScanService{
		scanner:  s,
		prefs:    prefs,
		fallback: fallbackFolder,
		now:      time.Now,
	}
}

// Folder returns the folder to scan, or "" when none is selected.
func (s *ScanService) Folder(ctx context.Context) (string, error) {
	p, err := s.prefs.Load(ctx)
	if err != nil {
		return "", WrapError(err, "failed to load preferences")
	}
	if p.SelectedFolder != nil && strings.TrimSpace(*p.SelectedFolder) != "" {
		return *p.SelectedFolder, nil
	}
	return s.fallback, nil
}

// Scan ingests new screenshots from the selected folder and records the scan
// time on success.
func (s *ScanService) Scan(ctx context.Context) ScanOutcome {
	logger := contextutil.LoggerFromContext(ctx)

	folder, err := s.Folder(ctx)
	if err != nil {
		return ScanOutcome{Status: ScanError, Message: err.Error()}
	}
	if folder == "" {
		logger.InfoContext(ctx, "scan skipped, no folder selected")
		return ScanOutcome{Status: ScanNoFolderSelected}
	}

	counts, err := s.scanner.Scan(ctx, folder)
	switch {
	case errors.Is(err, scanner.ErrPermissionDenied), errors.Is(err, scanner.ErrFolderNotFound):
		logger.WarnContext(ctx, "scan folder unavailable", "folder", folder, "error", err)
		return ScanOutcome{Status: ScanPermissionLost, Message: err.Error()}
	case err != nil:
		logger.ErrorContext(ctx, "scan failed", "folder", folder, "error", err)
		return ScanOutcome{Status: ScanError, Message: err.Error()}
	}

	if err := s.prefs.SetLastScanAt(ctx, s.now()); err != nil {
		logger.WarnContext(ctx, "failed to record scan time", "error", err)
	}
	logger.InfoContext(ctx, "scan completed",
		"folder", folder,
		"scanned", counts.Scanned,
		"new", counts.New,
		"skipped", counts.Skipped,
		"errors", counts.Errors,
	)
	return ScanOutcome{Status: ScanSuccess, Counts: counts}
}
