// Package backup exports the catalog to a portable JSON file and imports it back.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

// Version is the backup format version written by Export.
const Version = 1

// ErrInvalidBackup is returned when a backup cannot be read or decoded.
var ErrInvalidBackup = errors.New("invalid backup file")

// Data is the root of a backup file.
type Data struct {
	Version     int          `json:"version"`
	CreatedAt   int64        `json:"createdAt"`
	Screenshots []Screenshot `json:"screenshots"`
	Essences    []Essence    `json:"essences"`
}

// Screenshot is the backup form of a catalog item. Times are epoch milliseconds.
type Screenshot struct {
	ID           string  `json:"id"`
	ContentURI   string  `json:"contentUri"`
	SHA256       string  `json:"sha256"`
	DisplayName  string  `json:"displayName"`
	MimeType     string  `json:"mimeType"`
	SizeBytes    int64   `json:"sizeBytes"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	CapturedAt   int64   `json:"capturedAt"`
	IngestedAt   int64   `json:"ingestedAt"`
	Status       string  `json:"status"`
	ErrorMessage *string `json:"errorMessage"`
	Solved       bool    `json:"solved"`
	NoContent    bool    `json:"noContent"`
	Domain       *string `json:"domain"`
	Type         *string `json:"type"`
	OCRText      *string `json:"ocrText"`
}

// Essence is the backup form of an essence. List fields stay JSON-encoded strings.
type Essence struct {
	ScreenshotID       string  `json:"screenshotId"`
	Title              string  `json:"title"`
	SummaryBulletsJSON string  `json:"summaryBulletsJson"`
	TopicsJSON         string  `json:"topicsJson"`
	EntitiesJSON       string  `json:"entitiesJson"`
	SuggestedAction    *string `json:"suggestedAction"`
	Confidence         float64 `json:"confidence"`
	ModelName          string  `json:"modelName"`
	CreatedAt          int64   `json:"createdAt"`
}

// Result summarises an import.
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Service exports and imports backups.
type Service struct {
	items    storage.ItemStore
	essences storage.EssenceStore
	search   storage.SearchIndex
	now      func() time.Time
}

// NewService creates a backup Service.
func NewService(items storage.ItemStore, essences storage.EssenceStore, search storage.SearchIndex) *Service {
	return &Service{
		items:    items,
		essences: essences,
		search:   search,
		now:      time.Now,
	}
}

// Export writes every item and essence to w as indented JSON and returns the
// number of items written.
func (s *Service) Export(ctx context.Context, w io.Writer) (int, error) {
	items, err := s.items.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load items: %w", err)
	}
	records, err := s.essences.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load essences: %w", err)
	}

	data := Data{
		Version:     Version,
		CreatedAt:   s.now().UnixMilli(),
		Screenshots: make([]Screenshot, 0, len(items)),
		Essences:    make([]Essence, 0, len(records)),
	}
	for i := range items {
		data.Screenshots = append(data.Screenshots, fromItem(&items[i]))
	}
	for i := range records {
		data.Essences = append(data.Essences, fromRecord(&records[i]))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return 0, fmt.Errorf("failed to write backup: %w", err)
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "backup exported",
		"screenshots", len(data.Screenshots), "essences", len(data.Essences))
	return len(data.Screenshots), nil
}

// ExportFile writes a backup to path.
func (s *Service) ExportFile(ctx context.Context, path string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create backup file: %w", err)
	}
	n, err := s.Export(ctx, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close backup file: %w", closeErr)
	}
	return n, err
}

// Import reads a backup from r. Items whose fingerprint already exists are
// skipped; their ids are kept as written in the file. Essences are imported
// only for items that exist and have none, and content-bearing DONE items are
// re-indexed.
func (s *Service) Import(ctx context.Context, r io.Reader) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)
	var result Result

	var data Data
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return result, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}
	if data.Version > Version {
		logger.WarnContext(ctx, "backup written by a newer version", "version", data.Version)
	}

	for i := range data.Screenshots {
		sb := &data.Screenshots[i]
		exists, err := s.items.ExistsBySHA256(ctx, sb.SHA256)
		if err != nil {
			return result, err
		}
		if exists {
			result.Skipped++
			continue
		}

		if err := s.items.Insert(ctx, toItem(sb)); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				result.Skipped++
				continue
			}
			return result, err
		}
		result.Imported++
	}

	for i := range data.Essences {
		eb := &data.Essences[i]
		item, err := s.items.GetByID(ctx, eb.ScreenshotID)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return result, err
		}

		if _, err := s.essences.GetByScreenshotID(ctx, eb.ScreenshotID); err == nil {
			continue
		} else if !errors.Is(err, storage.ErrNotFound) {
			return result, err
		}

		rec := toRecord(eb)
		if err := s.essences.Upsert(ctx, rec); err != nil {
			return result, err
		}
		s.reindex(ctx, item, rec)
	}

	logger.InfoContext(ctx, "backup imported", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// ImportFile reads a backup from path.
func (s *Service) ImportFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return s.Import(ctx, f)
}

func (s *Service) reindex(ctx context.Context, item *storage.Item, rec *storage.EssenceRecord) {
	if item.Status != storage.StatusDone || item.NoContent {
		return
	}
	doc := storage.SearchDocument{
		ScreenshotID:   item.ID,
		Title:          rec.Title,
		SummaryBullets: storage.DecodeStrings(rec.SummaryBulletsJSON),
		Topics:         storage.DecodeStrings(rec.TopicsJSON),
		Entities:       storage.EntityNames(rec.EntitiesJSON),
	}
	if item.OCRText != nil {
		doc.OCRText = *item.OCRText
	}
	if item.Domain != nil {
		doc.Domain = *item.Domain
	}
	if item.Type != nil {
		doc.Type = *item.Type
	}
	if err := s.search.Index(ctx, doc); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to index imported item",
			"screenshot_id", item.ID, "error", err)
	}
}

func millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func fromItem(it *storage.Item) Screenshot {
	return Screenshot{
		ID:           it.ID,
		ContentURI:   it.ContentURI,
		SHA256:       it.SHA256,
		DisplayName:  it.DisplayName,
		MimeType:     it.MimeType,
		SizeBytes:    it.SizeBytes,
		Width:        it.Width,
		Height:       it.Height,
		CapturedAt:   millis(it.CapturedAt),
		IngestedAt:   millis(it.IngestedAt),
		Status:       string(it.Status),
		ErrorMessage: it.ErrorMessage,
		Solved:       it.Solved,
		NoContent:    it.NoContent,
		Domain:       it.Domain,
		Type:         it.Type,
		OCRText:      it.OCRText,
	}
}

func toItem(sb *Screenshot) *storage.Item {
	status := storage.ParseStatus(sb.Status)
	item := &storage.Item{
		ID:          sb.ID,
		ContentURI:  sb.ContentURI,
		SHA256:      sb.SHA256,
		DisplayName: sb.DisplayName,
		MimeType:    sb.MimeType,
		SizeBytes:   sb.SizeBytes,
		Width:       sb.Width,
		Height:      sb.Height,
		CapturedAt:  fromMillis(sb.CapturedAt),
		IngestedAt:  fromMillis(sb.IngestedAt),
		Status:      status,
		Solved:      sb.Solved,
		NoContent:   sb.NoContent,
		Domain:      sb.Domain,
		Type:        sb.Type,
		OCRText:     sb.OCRText,
	}
	if status == storage.StatusFailed {
		item.ErrorMessage = sb.ErrorMessage
	}
	return item
}

func fromRecord(rec *storage.EssenceRecord) Essence {
	return Essence{
		ScreenshotID:       rec.ScreenshotID,
		Title:              rec.Title,
		SummaryBulletsJSON: rec.SummaryBulletsJSON,
		TopicsJSON:         rec.TopicsJSON,
		EntitiesJSON:       rec.EntitiesJSON,
		SuggestedAction:    rec.SuggestedAction,
		Confidence:         rec.Confidence,
		ModelName:          rec.ModelName,
		CreatedAt:          millis(rec.CreatedAt),
	}
}

func toRecord(eb *Essence) *storage.EssenceRecord {
	return &storage.EssenceRecord{
		ScreenshotID:       eb.ScreenshotID,
		Title:              eb.Title,
		SummaryBulletsJSON: eb.SummaryBulletsJSON,
		TopicsJSON:         eb.TopicsJSON,
		EntitiesJSON:       eb.EntitiesJSON,
		SuggestedAction:    eb.SuggestedAction,
		Confidence:         eb.Confidence,
		ModelName:          eb.ModelName,
		CreatedAt:          fromMillis(eb.CreatedAt),
	}
}
