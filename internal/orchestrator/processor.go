// Package orchestrator moves catalog items through the processing state
// machine: NEW items are read, recognized, extracted, stored and indexed in
// small sequential batches.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
	"github.com/Fauli/screenshot-organizer/internal/essence"
	"github.com/Fauli/screenshot-organizer/internal/extractor"
	"github.com/Fauli/screenshot-organizer/internal/ocr"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

const (
	// DefaultBatchSize is the batch size for heuristic extraction.
	DefaultBatchSize = 10
	// CloudBatchSize bounds the cost of a single cloud-backed batch.
	CloudBatchSize = 1
)

// TextRecognizer returns the text in an image, or nil when there is none.
type TextRecognizer interface {
	Recognize(ctx context.Context, image []byte) *ocr.Result
}

// ExtractorSelector picks the extractor for a set of preferences.
type ExtractorSelector interface {
	Select(ctx context.Context, prefs storage.Preferences) extractor.Extractor
}

// ImageLoader reads the bytes behind an item's content locator.
type ImageLoader func(ctx context.Context, uri string) ([]byte, error)

// BatchOptions configure one ProcessBatch run.
type BatchOptions struct {
	// Size overrides the batch size when positive.
	Size int
	// Prefs is the preference snapshot the batch runs under.
	Prefs storage.Preferences
}

// BatchResult summarises one batch.
type BatchResult struct {
	Processed int  `json:"processed"`
	Succeeded int  `json:"succeeded"`
	Failed    int  `json:"failed"`
	NoContent int  `json:"no_content"`
	HasMore   bool `json:"has_more"`
}

func (r *BatchResult) add(o BatchResult) {
	r.Processed += o.Processed
	r.Succeeded += o.Succeeded
	r.Failed += o.Failed
	r.NoContent += o.NoContent
	r.HasMore = o.HasMore
}

// Progress is a snapshot of item counts per status.
type Progress struct {
	Total      int `json:"total"`
	New        int `json:"new"`
	Processing int `json:"processing"`
	Done       int `json:"done"`
	Failed     int `json:"failed"`
	// Pending is New plus Processing.
	Pending int `json:"pending"`
}

// Processor runs processing batches against the store.
type Processor struct {
	items    storage.ItemStore
	essences storage.EssenceStore
	search   storage.SearchIndex
	ocr      TextRecognizer
	selector ExtractorSelector
	load     ImageLoader
	now      func() time.Time
}

// Option configures a Processor.
type Option func(*Processor)

// WithImageLoader replaces the file system image loader.
func WithImageLoader(l ImageLoader) Option {
	return func(p *Processor) {
		p.load = l
	}
}

// WithClock replaces time.Now for essence timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		p.now = now
	}
}

// New creates a Processor.
func New(
	items storage.ItemStore,
	essences storage.EssenceStore,
	search storage.SearchIndex,
	recognizer TextRecognizer,
	selector ExtractorSelector,
	opts ...Option,
) *Processor {
	p := &Processor{
		items:    items,
		essences: essences,
		search:   search,
		ocr:      recognizer,
		selector: selector,
		load:     readFile,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func readFile(_ context.Context, uri string) ([]byte, error) {
	return os.ReadFile(uri)
}

// BatchSize resolves the number of items a batch takes.
func BatchSize(opts BatchOptions) int {
	if opts.Size > 0 {
		return opts.Size
	}
	if extractor.UsesCloud(opts.Prefs) {
		return CloudBatchSize
	}
	return DefaultBatchSize
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeSucceeded
	outcomeNoContent
	outcomeFailed
)

// ProcessBatch processes up to BatchSize(opts) NEW items, oldest first, one
// at a time. A failing item is recorded on that item and never stops the
// batch. The returned HasMore reports whether NEW items remain.
func (p *Processor) ProcessBatch(ctx context.Context, opts BatchOptions) (BatchResult, error) {
	logger := contextutil.LoggerFromContext(ctx)
	var result BatchResult

	size := BatchSize(opts)
	batch, err := p.items.ListByStatus(ctx, storage.StatusNew, size)
	if err != nil {
		return result, fmt.Errorf("failed to fetch new items: %w", err)
	}
	if len(batch) == 0 {
		return result, nil
	}

	ext := p.selector.Select(ctx, opts.Prefs)
	logger.InfoContext(ctx, "starting batch", "items", len(batch), "extractor", ext.Name())

	for i := range batch {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		switch p.processItem(ctx, ext, &batch[i]) {
		case outcomeSkipped:
			continue
		case outcomeSucceeded:
			result.Succeeded++
		case outcomeNoContent:
			result.Succeeded++
			result.NoContent++
		case outcomeFailed:
			result.Failed++
		}
		result.Processed++
	}

	more, err := p.items.ListByStatus(ctx, storage.StatusNew, 1)
	if err != nil {
		return result, fmt.Errorf("failed to check for remaining items: %w", err)
	}
	result.HasMore = len(more) > 0

	logger.InfoContext(ctx, "batch completed",
		"processed", result.Processed,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"no_content", result.NoContent,
		"has_more", result.HasMore,
	)
	return result, nil
}

// ProcessAll runs batches until no NEW items remain or a batch makes no progress.
func (p *Processor) ProcessAll(ctx context.Context, opts BatchOptions) (BatchResult, error) {
	var total BatchResult
	for {
		res, err := p.ProcessBatch(ctx, opts)
		total.add(res)
		if err != nil {
			return total, err
		}
		if !res.HasMore || res.Processed == 0 {
			return total, nil
		}
	}
}

func (p *Processor) processItem(ctx context.Context, ext extractor.Extractor, item *storage.Item) outcome {
	logger := contextutil.LoggerFromContext(ctx).With("screenshot_id", item.ID)

	if err := p.items.MarkProcessing(ctx, item.ID); err != nil {
		if errors.Is(err, storage.ErrInvalidTransition) || errors.Is(err, storage.ErrNotFound) {
			logger.DebugContext(ctx, "item no longer new, skipping", "error", err)
		} else {
			logger.ErrorContext(ctx, "failed to mark item processing", "error", err)
		}
		return outcomeSkipped
	}

	data, err := p.load(ctx, item.ContentURI)
	if err != nil {
		return p.fail(ctx, item.ID, fmt.Sprintf("failed to read image: %v", err))
	}

	in := extractor.Input{ScreenshotID: item.ID, ImageBytes: data}
	if res := p.ocr.Recognize(ctx, data); res != nil {
		text := res.FullText
		in.OCRText = &text
		in.Blocks = res.Blocks
	}

	result := ext.Extract(ctx, in)
	if !result.OK() {
		logger.WarnContext(ctx, "extraction failed", "reason", result.Reason, "retryable", result.Retryable)
		return p.fail(ctx, item.ID, result.Reason)
	}

	rec := storage.NewEssenceRecord(item.ID, result.Essence, result.ModelName, p.now())
	if err := p.essences.Upsert(ctx, rec); err != nil {
		return p.fail(ctx, item.ID, fmt.Sprintf("failed to store essence: %v", err))
	}

	if err := p.items.MarkDone(ctx, item.ID, storage.DoneUpdate{
		Domain:    result.Essence.Domain,
		Type:      string(result.Essence.Type),
		OCRText:   in.OCRText,
		NoContent: result.NoContent,
	}); err != nil {
		return p.fail(ctx, item.ID, fmt.Sprintf("failed to complete item: %v", err))
	}

	if result.NoContent {
		if err := p.search.Remove(ctx, item.ID); err != nil {
			logger.WarnContext(ctx, "failed to remove stale search entry", "error", err)
		}
		logger.InfoContext(ctx, "item has no content", "model", result.ModelName)
		return outcomeNoContent
	}

	if err := p.search.Index(ctx, searchDocument(item.ID, result.Essence, in.OCRText)); err != nil {
		// The item stays DONE; reprocessing rebuilds the entry.
		logger.WarnContext(ctx, "failed to index item", "error", err)
	}

	logger.InfoContext(ctx, "item processed", "model", result.ModelName, "type", result.Essence.Type)
	return outcomeSucceeded
}

func (p *Processor) fail(ctx context.Context, id, reason string) outcome {
	if err := p.items.MarkFailed(ctx, id, reason); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to mark item failed",
			"screenshot_id", id, "reason", reason, "error", err)
	}
	return outcomeFailed
}

func searchDocument(id string, e essence.Essence, ocrText *string) storage.SearchDocument {
	doc := storage.SearchDocument{
		ScreenshotID:   id,
		Title:          e.Title,
		SummaryBullets: e.SummaryBullets,
		Topics:         e.Topics,
		Entities:       e.EntityNames(),
		Type:           string(e.Type),
	}
	if ocrText != nil {
		doc.OCRText = *ocrText
	}
	if e.Domain != nil {
		doc.Domain = *e.Domain
	}
	return doc
}

// Reprocess drops an item's essence and search entry and returns it to NEW.
// The no-content flag is left for the next run to re-derive. An item that is
// PROCESSING is refused with ErrInvalidTransition and left untouched.
func (p *Processor) Reprocess(ctx context.Context, id string) error {
	item, err := p.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item.Status == storage.StatusProcessing {
		return fmt.Errorf("screenshot %s is being processed: %w", id, storage.ErrInvalidTransition)
	}
	if err := p.essences.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete essence: %w", err)
	}
	if err := p.search.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to remove search entry: %w", err)
	}
	if err := p.items.ResetToNew(ctx, id); err != nil {
		return fmt.Errorf("failed to reset item: %w", err)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "item queued for reprocessing", "screenshot_id", id)
	return nil
}

// ResetAll deletes every essence, clears the search index and returns every
// item to NEW with its no-content flag cleared. It returns the number of items reset.
func (p *Processor) ResetAll(ctx context.Context) (int, error) {
	if err := p.essences.DeleteAll(ctx); err != nil {
		return 0, fmt.Errorf("failed to delete essences: %w", err)
	}
	if err := p.search.Clear(ctx); err != nil {
		return 0, fmt.Errorf("failed to clear search index: %w", err)
	}
	n, err := p.items.ResetAllToNew(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reset items: %w", err)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "all items reset for reprocessing", "items", n)
	return int(n), nil
}

// ResetStuck returns items left in PROCESSING by a dead run to NEW.
func (p *Processor) ResetStuck(ctx context.Context) (int, error) {
	n, err := p.items.ResetStuck(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "reset stuck items", "items", n)
	}
	return int(n), nil
}

// Progress counts items per status.
func (p *Processor) Progress(ctx context.Context) (Progress, error) {
	var pr Progress
	counts := []struct {
		status storage.Status
		dst    *int
	}{
		{storage.StatusNew, &pr.New},
		{storage.StatusProcessing, &pr.Processing},
		{storage.StatusDone, &pr.Done},
		{storage.StatusFailed, &pr.Failed},
	}
	for _, c := range counts {
		n, err := p.items.CountByStatus(ctx, c.status)
		if err != nil {
			return Progress{}, fmt.Errorf("failed to count %s items: %w", c.status, err)
		}
		*c.dst = n
	}
	pr.Total = pr.New + pr.Processing + pr.Done + pr.Failed
	pr.Pending = pr.New + pr.Processing
	return pr, nil
}
