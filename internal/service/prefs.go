package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

// PreferencesUpdate is a partial preferences change. nil fields are left
// unchanged; an empty SelectedFolder or OpenAIAPIKey clears the value.
type PreferencesUpdate struct {
	SelectedFolder         *string
	AIMode                 *string
	HideSolvedByDefault    *bool
	HideNoContentByDefault *bool
	OpenAIAPIKey           *string
	AutoProcessOnStartup   *bool
}

// Resetter returns every item to NEW.
type Resetter interface {
	ResetAll(ctx context.Context) (int, error)
}

// PreferencesService reads and updates user preferences.
type PreferencesService struct {
	prefs    storage.PreferenceStore
	resetter Resetter
}

// NewPreferencesService creates a PreferencesService. Switching the AI mode
// resets all items through resetter so they are reprocessed with the new extractor.
func NewPreferencesService(prefs storage.PreferenceStore, resetter Resetter) *PreferencesService {
	return &PreferencesService{prefs: prefs, resetter: resetter}
}

// Get returns the current preferences.
func (s *PreferencesService) Get(ctx context.Context) (storage.Preferences, error) {
	p, err := s.prefs.Load(ctx)
	if err != nil {
		return storage.Preferences{}, WrapError(err, "failed to load preferences")
	}
	return p, nil
}

func validateFolder(folder string) error {
	if !filepath.IsAbs(folder) {
		return &ValidationError{Field: "selected_folder", Message: "must be an absolute path"}
	}
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return &ValidationError{Field: "selected_folder", Message: "must be an existing directory"}
	}
	return nil
}

func validateAIMode(mode string) (storage.AIMode, error) {
	switch m := storage.AIMode(strings.ToUpper(strings.TrimSpace(mode))); m {
	case storage.AIModeOCROnly, storage.AIModeCloud:
		return m, nil
	default:
		return "", &ValidationError{Field: "ai_mode", Message: "must be OCR_ONLY or CLOUD"}
	}
}

// Update applies u and returns the resulting preferences. Every field is
// validated before anything is written.
func (s *PreferencesService) Update(ctx context.Context, u PreferencesUpdate) (storage.Preferences, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var mode storage.AIMode
	if u.AIMode != nil {
		m, err := validateAIMode(*u.AIMode)
		if err != nil {
			return storage.Preferences{}, err
		}
		mode = m
	}
	var folder *string
	if u.SelectedFolder != nil {
		if f := strings.TrimSpace(*u.SelectedFolder); f != "" {
			f = filepath.Clean(f)
			if err := validateFolder(f); err != nil {
				return storage.Preferences{}, err
			}
			folder = &f
		}
	}

	current, err := s.prefs.Load(ctx)
	if err != nil {
		return storage.Preferences{}, WrapError(err, "failed to load preferences")
	}

	if u.SelectedFolder != nil {
		if err := s.prefs.SetSelectedFolder(ctx, folder); err != nil {
			return storage.Preferences{}, WrapError(err, "failed to store folder")
		}
	}
	if u.HideSolvedByDefault != nil {
		if err := s.prefs.SetHideSolvedByDefault(ctx, *u.HideSolvedByDefault); err != nil {
			return storage.Preferences{}, WrapError(err, "failed to store preference")
		}
	}
	if u.HideNoContentByDefault != nil {
		if err := s.prefs.SetHideNoContentByDefault(ctx, *u.HideNoContentByDefault); err != nil {
			return storage.Preferences{}, WrapError(err, "failed to store preference")
		}
	}
	if u.OpenAIAPIKey != nil {
		var key *string
		if k := strings.TrimSpace(*u.OpenAIAPIKey); k != "" {
			key = &k
		}
		if err := s.prefs.SetOpenAIAPIKey(ctx, key); err != nil {
			return storage.Preferences{}, WrapError(err, "failed to store api key")
		}
	}
	if u.AutoProcessOnStartup != nil {
		if err := s.prefs.SetAutoProcessOnStartup(ctx, *u.AutoProcessOnStartup); err != nil {
			return storage.Preferences{}, WrapError(err, "failed to store preference")
		}
	}
	if u.AIMode != nil && mode != current.AIMode {
		if err := s.prefs.SetAIMode(ctx, mode); err != nil {
			return storage.Preferences{}, WrapError(err, "failed to store ai mode")
		}
		n, err := s.resetter.ResetAll(ctx)
		if err != nil {
			return storage.Preferences{}, WrapError(err, "failed to reset items after mode change")
		}
		logger.InfoContext(ctx, "ai mode changed, items reset", "from", current.AIMode, "to", mode, "items", n)
	}

	return s.Get(ctx)
}

// Seed stores the configured API key and auto-process flag when no
// preference has been saved for them yet.
func (s *PreferencesService) Seed(ctx context.Context, apiKey string, autoProcess bool) error {
	current, err := s.prefs.Load(ctx)
	if err != nil {
		return WrapError(err, "failed to load preferences")
	}
	if key := strings.TrimSpace(apiKey); key != "" && !current.HasAPIKey() {
		if err := s.prefs.SetOpenAIAPIKey(ctx, &key); err != nil {
			return WrapError(err, "failed to seed api key")
		}
	}
	if autoProcess && !current.AutoProcessOnStartup {
		if err := s.prefs.SetAutoProcessOnStartup(ctx, true); err != nil {
			return WrapError(err, "failed to seed auto process")
		}
	}
	return nil
}
