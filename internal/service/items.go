package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
	"github.com/Fauli/screenshot-organizer/internal/essence"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

const (
	// DefaultListLimit is the page size when none is requested.
	DefaultListLimit = 50
	// MaxListLimit caps a single page.
	MaxListLimit = 500
)

// ListParams select a page of items. nil Include flags fall back to the
// hide-by-default preferences.
type ListParams struct {
	Filter           string
	IncludeSolved    *bool
	IncludeNoContent *bool
	Domain           string
	Type             string
	Action           string
	Topic            string
	Period           string
	Limit            int
	Offset           int
}

// EssenceView is a decoded essence with its provenance.
type EssenceView struct {
	Essence   essence.Essence
	ModelName string
	CreatedAt time.Time
}

// ItemDetail is an item with its essence, if any.
type ItemDetail struct {
	Item    storage.Item
	Essence *EssenceView
}

// ItemService exposes catalog items and the per-item user actions.
type ItemService struct {
	items     storage.ItemStore
	essences  storage.EssenceStore
	prefs     storage.PreferenceStore
	processor Processor
	now       func() time.Time
}

// NewItemService creates an ItemService.
func NewItemService(items storage.ItemStore, essences storage.EssenceStore, prefs storage.PreferenceStore, processor Processor) *ItemService {
	return &ItemService{
		items:     items,
		essences:  essences,
		prefs:     prefs,
		processor: processor,
		now:       time.Now,
	}
}

func parseFilter(s string) (storage.ListFilter, error) {
	switch f := storage.ListFilter(strings.ToUpper(strings.TrimSpace(s))); f {
	case "", storage.FilterAll:
		return storage.FilterAll, nil
	case storage.FilterProcessed, storage.FilterPending:
		return f, nil
	default:
		return "", &ValidationError{Field: "filter", Message: "must be one of ALL, PROCESSED, PENDING"}
	}
}

func parsePeriod(s string) (storage.TimePeriod, error) {
	p := storage.TimePeriod(strings.ToUpper(strings.TrimSpace(s)))
	if p == "" {
		return "", nil
	}
	for _, known := range storage.TimePeriods {
		if p == known {
			return p, nil
		}
	}
	return "", &ValidationError{Field: "period", Message: "must be one of TODAY, THIS_WEEK, THIS_MONTH, OLDER"}
}

func orDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// List returns a page of items, newest capture first.
func (s *ItemService) List(ctx context.Context, params ListParams) ([]storage.Item, error) {
	filter, err := parseFilter(params.Filter)
	if err != nil {
		return nil, err
	}
	period, err := parsePeriod(params.Period)
	if err != nil {
		return nil, err
	}
	if params.Offset < 0 {
		return nil, &ValidationError{Field: "offset", Message: "cannot be negative"}
	}
	limit := params.Limit
	switch {
	case limit < 0:
		return nil, &ValidationError{Field: "limit", Message: "cannot be negative"}
	case limit == 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	prefs, err := s.prefs.Load(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to load preferences")
	}

	q := storage.ListQuery{
		Filter:           filter,
		IncludeSolved:    orDefault(params.IncludeSolved, !prefs.HideSolvedByDefault),
		IncludeNoContent: orDefault(params.IncludeNoContent, !prefs.HideNoContentByDefault),
		Domain:           strings.ToLower(strings.TrimSpace(params.Domain)),
		Type:             strings.TrimSpace(params.Type),
		Action:           strings.TrimSpace(params.Action),
		Topic:            strings.TrimSpace(params.Topic),
		Limit:            limit,
		Offset:           params.Offset,
	}
	if period != "" {
		q.From, q.To = storage.TimeBoundaries(s.now()).Range(period)
	}

	items, err := s.items.List(ctx, q)
	if err != nil {
		return nil, WrapError(err, "failed to list items")
	}
	return items, nil
}

// Get returns an item and its essence.
func (s *ItemService) Get(ctx context.Context, id string) (ItemDetail, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return ItemDetail{}, mapStoreError(err, "failed to get item")
	}

	detail := ItemDetail{Item: *item}
	rec, err := s.essences.GetByScreenshotID(ctx, id)
	switch {
	case err == nil:
		detail.Essence = &EssenceView{
			Essence:   rec.Essence(item.Domain, item.Type),
			ModelName: rec.ModelName,
			CreatedAt: rec.CreatedAt,
		}
	case !errors.Is(err, storage.ErrNotFound):
		return ItemDetail{}, WrapError(err, "failed to get essence")
	}
	return detail, nil
}

// SetSolved marks an item solved or unsolved.
func (s *ItemService) SetSolved(ctx context.Context, id string, solved bool) error {
	if err := s.items.SetSolved(ctx, id, solved); err != nil {
		return mapStoreError(err, "failed to update item")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "item solved flag updated", "screenshot_id", id, "solved", solved)
	return nil
}

// Reprocess returns an item to NEW and drops its derived data.
func (s *ItemService) Reprocess(ctx context.Context, id string) error {
	if err := s.processor.Reprocess(ctx, id); err != nil {
		return mapStoreError(err, "failed to reprocess item")
	}
	return nil
}

// Delete removes an item with its essence and search entry. The image file is left alone.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return mapStoreError(err, "failed to delete item")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "item deleted", "screenshot_id", id)
	return nil
}

// ResetAll returns every item to NEW for reprocessing.
func (s *ItemService) ResetAll(ctx context.Context) (int, error) {
	n, err := s.processor.ResetAll(ctx)
	if err != nil {
		return 0, WrapError(err, "failed to reset items")
	}
	return n, nil
}

// ResetStuck returns PROCESSING items to NEW.
func (s *ItemService) ResetStuck(ctx context.Context) (int, error) {
	n, err := s.processor.ResetStuck(ctx)
	if err != nil {
		return 0, WrapError(err, "failed to reset stuck items")
	}
	return n, nil
}

func mapStoreError(err error, msg string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}
	if errors.Is(err, storage.ErrInvalidTransition) {
		return WrapError(&ValidationError{Field: "status", Message: err.Error()}, msg)
	}
	return WrapError(err, msg)
}
