package service

import (
	"context"
	"strings"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

// MaxSearchLimit caps a single search.
const MaxSearchLimit = 200

// SearchParams describe a full-text search. A nil IncludeSolved follows the
// hide-solved preference.
type SearchParams struct {
	Query         string
	IncludeSolved *bool
	Limit         int
}

// SearchService runs full-text searches over processed items.
type SearchService struct {
	index storage.SearchIndex
	prefs storage.PreferenceStore
}

// NewSearchService creates a SearchService.
func NewSearchService(index storage.SearchIndex, prefs storage.PreferenceStore) *SearchService {
	return &SearchService{index: index, prefs: prefs}
}

// Search returns matching items, newest first. A blank query matches nothing.
func (s *SearchService) Search(ctx context.Context, params SearchParams) ([]storage.Item, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return []storage.Item{}, nil
	}
	if params.Limit < 0 {
		return nil, &ValidationError{Field: "limit", Message: "cannot be negative"}
	}
	limit := min(params.Limit, MaxSearchLimit)

	includeSolved := false
	if params.IncludeSolved != nil {
		includeSolved = *params.IncludeSolved
	} else {
		prefs, err := s.prefs.Load(ctx)
		if err != nil {
			return nil, WrapError(err, "failed to load preferences")
		}
		includeSolved = !prefs.HideSolvedByDefault
	}

	items, err := s.index.Search(ctx, query, includeSolved, limit)
	if err != nil {
		return nil, WrapError(err, "failed to search")
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "search completed", "query_length", len(query), "results", len(items))
	return items, nil
}
