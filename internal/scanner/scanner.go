// Package scanner ingests screenshot files from a folder into the catalog.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
	"github.com/Fauli/screenshot-organizer/internal/hasher"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

var (
	// ErrFolderNotFound is returned when the folder does not exist or is not a directory.
	ErrFolderNotFound = errors.New("folder not found")
	// ErrPermissionDenied is returned when the folder cannot be read.
	ErrPermissionDenied = errors.New("folder permission denied")
)

// Counts aggregates the outcome of one scan. New + Skipped + Errors == Scanned.
type Counts struct {
	Scanned int `json:"scanned"`
	New     int `json:"new"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// Scanner enumerates image files in a folder and inserts unseen ones as NEW items.
type Scanner struct {
	items storage.ItemStore
	now   func() time.Time
	newID func() string
}

// New creates a Scanner that records items in the given store.
func New(items storage.ItemStore) *Scanner {
	return &Scanner{
		items: items,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Scan ingests the direct children of folder. Per-file failures are counted
// and do not stop the scan.
func (s *Scanner) Scan(ctx context.Context, folder string) (Counts, error) {
	logger := contextutil.LoggerFromContext(ctx)
	var counts Counts

	info, err := os.Stat(folder)
	if err != nil {
		return counts, classifyFolderError(folder, err)
	}
	if !info.IsDir() {
		return counts, fmt.Errorf("%w: %s is not a directory", ErrFolderNotFound, folder)
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return counts, classifyFolderError(folder, err)
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return counts, ctx.Err()
		default:
		}

		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		path := filepath.Join(folder, entry.Name())
		mimeType, ok := imageMimeType(path)
		if !ok {
			continue
		}
		counts.Scanned++

		inserted, err := s.ingest(ctx, path, mimeType)
		switch {
		case err != nil:
			counts.Errors++
			logger.WarnContext(ctx, "failed to ingest file", "path", path, "error", err)
		case inserted:
			counts.New++
		default:
			counts.Skipped++
		}
	}

	logger.InfoContext(ctx, "scan completed",
		"folder", folder,
		"scanned", counts.Scanned,
		"new", counts.New,
		"skipped", counts.Skipped,
		"errors", counts.Errors,
	)
	return counts, nil
}

// ingest fingerprints one file and inserts it unless already known.
// It reports false with a nil error for duplicates.
func (s *Scanner) ingest(ctx context.Context, path, mimeType string) (bool, error) {
	sum, err := hasher.HashFile(path)
	if err != nil {
		return false, err
	}

	exists, err := s.items.ExistsBySHA256(ctx, sum)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat file: %w", err)
	}

	width, height := imageDimensions(path)
	now := s.now()
	item := &storage.Item{
		ID:          s.newID(),
		ContentURI:  path,
		SHA256:      sum,
		DisplayName: filepath.Base(path),
		MimeType:    mimeType,
		SizeBytes:   info.Size(),
		Width:       width,
		Height:      height,
		CapturedAt:  CapturedAt(info.ModTime(), filepath.Base(path), now),
		IngestedAt:  now,
		Status:      storage.StatusNew,
	}

	if err := s.items.Insert(ctx, item); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			// Inserted concurrently by another scan.
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func classifyFolderError(folder string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrFolderNotFound, folder)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, folder)
	default:
		return fmt.Errorf("failed to read folder %s: %w", folder, err)
	}
}

// imageMimeType resolves a raster image MIME type from the extension, falling
// back to sniffing the first 512 bytes.
func imageMimeType(path string) (string, bool) {
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mimeType == "" {
		mimeType = sniff(path)
	}
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if !strings.HasPrefix(mimeType, "image/") || mimeType == "image/svg+xml" {
		return "", false
	}
	return mimeType, true
}

func sniff(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return ""
	}
	return http.DetectContentType(buf[:n])
}

// imageDimensions decodes only the image header. Unknown formats yield 0x0.
func imageDimensions(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer func() {
		_ = f.Close()
	}()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

var capturedAtPattern = regexp.MustCompile(`(\d{4})(\d{2})(\d{2})[_-]?(\d{2})(\d{2})(\d{2})?`)

// CapturedAt picks the capture time: the modification time when set, else a
// YYYYMMDD[_-]HHMM[SS] stamp in the file name (local time), else now.
func CapturedAt(modTime time.Time, name string, now time.Time) time.Time {
	if !modTime.IsZero() && modTime.UnixMilli() > 0 {
		return modTime
	}

	m := capturedAtPattern.FindStringSubmatch(name)
	if m == nil {
		return now
	}
	parts := make([]int, 6)
	for i := 1; i <= 6; i++ {
		if m[i] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i])
		if err != nil {
			return now
		}
		parts[i-1] = n
	}
	return time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], 0, time.Local)
}
