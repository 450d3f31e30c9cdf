package extractor

import (
	"context"
	"strings"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

// CloudFactory builds a cloud extractor for an API key.
type CloudFactory func(apiKey string) Extractor

// Selector picks the extractor matching the user's preferences.
type Selector struct {
	heuristic Extractor
	newCloud  CloudFactory
}

// NewSelector creates a Selector. newCloud may be nil, in which case cloud
// mode always falls back to the heuristic.
func NewSelector(heuristic Extractor, newCloud CloudFactory) *Selector {
	return &Selector{heuristic: heuristic, newCloud: newCloud}
}

// Select returns the cloud extractor when cloud mode has a key, and the
// heuristic otherwise. A missing key is not an error.
func (s *Selector) Select(ctx context.Context, prefs storage.Preferences) Extractor {
	if prefs.AIMode != storage.AIModeCloud {
		return s.heuristic
	}
	if !prefs.HasAPIKey() || s.newCloud == nil {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "cloud mode without api key, using heuristic extractor")
		return s.heuristic
	}
	return s.newCloud(strings.TrimSpace(*prefs.OpenAIAPIKey))
}

// UsesCloud reports whether prefs select the cloud extractor.
func UsesCloud(prefs storage.Preferences) bool {
	return prefs.AIMode == storage.AIModeCloud && prefs.HasAPIKey()
}
