package service

import (
	"context"
	"time"

	"github.com/Fauli/screenshot-organizer/internal/storage"
)

// Insights aggregates the catalog for browsing.
type Insights struct {
	Totals  storage.Totals
	Domains []storage.Count
	Types   []storage.Count
	Actions []storage.Count
	Periods []storage.Count
	Topics  []storage.Count
}

// InsightsService computes catalog aggregates.
type InsightsService struct {
	store storage.InsightStore
	prefs storage.PreferenceStore
	now   func() time.Time
}

// NewInsightsService creates an InsightsService.
func NewInsightsService(store storage.InsightStore, prefs storage.PreferenceStore) *InsightsService {
	return &InsightsService{store: store, prefs: prefs, now: time.Now}
}

// Get computes every aggregate. A nil includeSolved follows the hide-solved preference.
func (s *InsightsService) Get(ctx context.Context, includeSolved *bool) (Insights, error) {
	var out Insights

	incl := false
	if includeSolved != nil {
		incl = *includeSolved
	} else {
		prefs, err := s.prefs.Load(ctx)
		if err != nil {
			return out, WrapError(err, "failed to load preferences")
		}
		incl = !prefs.HideSolvedByDefault
	}

	var err error
	if out.Totals, err = s.store.Totals(ctx); err != nil {
		return out, WrapError(err, "failed to count items")
	}
	if out.Domains, err = s.store.DomainCounts(ctx, incl); err != nil {
		return out, WrapError(err, "failed to count domains")
	}
	if out.Types, err = s.store.ContentTypeCounts(ctx, incl); err != nil {
		return out, WrapError(err, "failed to count content types")
	}
	if out.Actions, err = s.store.ActionCounts(ctx, incl); err != nil {
		return out, WrapError(err, "failed to count actions")
	}
	if out.Periods, err = s.store.TimePeriodCounts(ctx, s.now(), incl); err != nil {
		return out, WrapError(err, "failed to count time periods")
	}
	if out.Topics, err = s.store.TopicCounts(ctx, incl); err != nil {
		return out, WrapError(err, "failed to count topics")
	}
	return out, nil
}
