package scanner

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/Fauli/screenshot-organizer/internal/storage"
	"github.com/Fauli/screenshot-organizer/internal/storage/mocks"
)

func pngBytes(t *testing.T, w, h int, shade uint8) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = shade
	}
	img.Set(0, 0, color.Gray{Y: shade + 1})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	return path
}

func newStore(t *testing.T) *storage.ItemRepo {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "scan.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return storage.NewItemRepo(db, nil)
}

func TestScanner_Scan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Screenshot_20240115_123456.png", pngBytes(t, 40, 20, 10))
	writeFile(t, dir, "second.png", pngBytes(t, 30, 30, 50))
	// Same bytes as second.png under another name.
	writeFile(t, dir, "copy.png", pngBytes(t, 30, 30, 50))
	// PNG content without an extension is found by sniffing.
	writeFile(t, dir, "noext", pngBytes(t, 10, 10, 90))
	writeFile(t, dir, "notes.txt", []byte("not an image"))
	writeFile(t, dir, ".hidden.png", pngBytes(t, 5, 5, 5))
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "nested"), "deep.png", pngBytes(t, 5, 5, 120))

	items := newStore(t)
	s := New(items)
	ctx := context.Background()

	counts, err := s.Scan(ctx, dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	want := Counts{Scanned: 4, New: 3, Skipped: 1}
	if counts != want {
		t.Errorf("Scan() = %+v, want %+v", counts, want)
	}

	all, err := items.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("stored %d items, want 3", len(all))
	}
	for _, it := range all {
		if it.Status != storage.StatusNew {
			t.Errorf("%s status = %v, want NEW", it.DisplayName, it.Status)
		}
		if it.MimeType != "image/png" {
			t.Errorf("%s mime = %s, want image/png", it.DisplayName, it.MimeType)
		}
		if !filepath.IsAbs(it.ContentURI) {
			t.Errorf("%s content uri %s is not absolute", it.DisplayName, it.ContentURI)
		}
		if it.DisplayName == "Screenshot_20240115_123456.png" && (it.Width != 40 || it.Height != 20) {
			t.Errorf("dimensions = %dx%d, want 40x20", it.Width, it.Height)
		}
	}

	// A second scan of the same folder inserts nothing.
	again, err := s.Scan(ctx, dir)
	if err != nil {
		t.Fatalf("second Scan() error = %v", err)
	}
	if again.New != 0 || again.Skipped != again.Scanned || again.Skipped < counts.New {
		t.Errorf("second Scan() = %+v, want all skipped", again)
	}
}

func TestScanner_FolderErrors(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "file.png", pngBytes(t, 2, 2, 1))

	tests := []struct {
		name    string
		folder  string
		wantErr error
	}{
		{name: "missing folder", folder: filepath.Join(dir, "missing"), wantErr: ErrFolderNotFound},
		{name: "not a directory", folder: file, wantErr: ErrFolderNotFound},
	}

	if runtime.GOOS != "windows" && os.Geteuid() != 0 {
		locked := filepath.Join(dir, "locked")
		if err := os.Mkdir(locked, 0000); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() {
			_ = os.Chmod(locked, 0755)
		})
		tests = append(tests, struct {
			name    string
			folder  string
			wantErr error
		}{name: "permission denied", folder: locked, wantErr: ErrPermissionDenied})
	}

	s := New(newStore(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Scan(context.Background(), tt.folder)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Scan() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestScanner_InsertRaceAndErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.png", pngBytes(t, 4, 4, 10))
	writeFile(t, dir, "b.png", pngBytes(t, 4, 4, 20))
	writeFile(t, dir, "c.png", pngBytes(t, 4, 4, 30))

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockItems := mocks.NewMockItemStore(ctrl)
	mockItems.EXPECT().ExistsBySHA256(gomock.Any(), gomock.Any()).Return(false, nil).Times(3)
	gomock.InOrder(
		mockItems.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
		mockItems.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(storage.ErrDuplicate),
		mockItems.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("disk full")),
	)

	counts, err := New(mockItems).Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	want := Counts{Scanned: 3, New: 1, Skipped: 1, Errors: 1}
	if counts != want {
		t.Errorf("Scan() = %+v, want %+v", counts, want)
	}
}

func TestScanner_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.png", pngBytes(t, 4, 4, 10))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(newStore(t)).Scan(ctx, dir)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Scan() error = %v, want context.Canceled", err)
	}
}

func TestCapturedAt(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	mod := time.Date(2023, 6, 7, 8, 9, 10, 0, time.Local)

	tests := []struct {
		name    string
		modTime time.Time
		file    string
		want    time.Time
	}{
		{name: "modification time wins", modTime: mod, file: "Screenshot_20240115_123456.png", want: mod},
		{name: "file name with seconds", file: "Screenshot_20240115_123456.png", want: time.Date(2024, 1, 15, 12, 34, 56, 0, time.Local)},
		{name: "file name dash no seconds", file: "shot-20240115-1234.png", want: time.Date(2024, 1, 15, 12, 34, 0, 0, time.Local)},
		{name: "file name compact", file: "IMG202402291200.png", want: time.Date(2024, 2, 29, 12, 0, 0, 0, time.Local)},
		{name: "no stamp falls back to now", file: "screenshot.png", want: now},
		{name: "epoch modification time ignored", modTime: time.UnixMilli(0), file: "plain.png", want: now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CapturedAt(tt.modTime, tt.file, now); !got.Equal(tt.want) {
				t.Errorf("CapturedAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestImageMimeType(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		file   string
		data   []byte
		want   string
		wantOK bool
	}{
		{name: "png by extension", file: "a.PNG", data: []byte("x"), want: "image/png", wantOK: true},
		{name: "jpeg by extension", file: "a.jpg", data: []byte("x"), want: "image/jpeg", wantOK: true},
		{name: "sniffed png", file: "blob", data: pngBytes(t, 2, 2, 1), want: "image/png", wantOK: true},
		{name: "svg is not raster", file: "a.svg", data: []byte("<svg/>")},
		{name: "text", file: "a.txt", data: []byte("hello")},
		{name: "unknown bytes", file: "blob2", data: []byte("hello world")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.data)
			got, ok := imageMimeType(path)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("imageMimeType() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
