package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_preference_store.go -package=mocks github.com/Fauli/screenshot-organizer/internal/storage PreferenceStore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AIMode selects the extraction strategy.
type AIMode string

const (
	AIModeOCROnly AIMode = "OCR_ONLY"
	AIModeCloud   AIMode = "CLOUD"
)

// ParseAIMode maps a case-insensitive name to an AIMode. Unknown names map to OCR_ONLY.
func ParseAIMode(s string) AIMode {
	if AIMode(strings.ToUpper(strings.TrimSpace(s))) == AIModeCloud {
		return AIModeCloud
	}
	return AIModeOCROnly
}

// Preference keys.
const (
	PrefSelectedFolder         = "selected_folder_uri"
	PrefAIMode                 = "ai_mode"
	PrefHideSolvedByDefault    = "hide_solved_by_default"
	PrefHideNoContentByDefault = "hide_no_content_by_default"
	PrefLastScanAt             = "last_scan_at"
	PrefOpenAIAPIKey           = "openai_api_key"
	PrefAutoProcessOnStartup   = "auto_process_on_startup"
)

// Preferences are the persisted user settings.
type Preferences struct {
	SelectedFolder         *string
	AIMode                 AIMode
	HideSolvedByDefault    bool
	HideNoContentByDefault bool
	LastScanAt             time.Time
	OpenAIAPIKey           *string
	AutoProcessOnStartup   bool
}

// DefaultPreferences returns the settings used before anything is stored.
func DefaultPreferences() Preferences {
	return Preferences{
		AIMode:                 AIModeOCROnly,
		HideSolvedByDefault:    true,
		HideNoContentByDefault: true,
	}
}

// HasAPIKey reports whether a non-blank cloud key is configured.
func (p Preferences) HasAPIKey() bool {
	return p.OpenAIAPIKey != nil && strings.TrimSpace(*p.OpenAIAPIKey) != ""
}

// PreferenceStore defines the interface for user preference storage.
type PreferenceStore interface {
	// Load returns the stored preferences with defaults for missing keys.
	Load(ctx context.Context) (Preferences, error)
	// SetSelectedFolder stores the watched folder. nil clears it.
	SetSelectedFolder(ctx context.Context, folder *string) error
	SetAIMode(ctx context.Context, mode AIMode) error
	SetHideSolvedByDefault(ctx context.Context, hide bool) error
	SetHideNoContentByDefault(ctx context.Context, hide bool) error
	SetLastScanAt(ctx context.Context, at time.Time) error
	// SetOpenAIAPIKey stores the cloud key. nil clears it.
	SetOpenAIAPIKey(ctx context.Context, key *string) error
	SetAutoProcessOnStartup(ctx context.Context, enabled bool) error
}

// PrefsRepo stores preferences as key/value rows.
type PrefsRepo struct {
	db     *sql.DB
	notify *Notifier
}

// NewPrefsRepo creates a new PrefsRepo. notify may be nil.
func NewPrefsRepo(db *sql.DB, notify *Notifier) *PrefsRepo {
	return &PrefsRepo{db: db, notify: notify}
}

// Load returns the stored preferences with defaults for missing keys.
// Values that fail to parse fall back to their defaults.
func (r *PrefsRepo) Load(ctx context.Context) (Preferences, error) {
	prefs := DefaultPreferences()

	rows, err := r.db.QueryContext(ctx, "SELECT key, value FROM preferences")
	if err != nil {
		return prefs, fmt.Errorf("failed to load preferences: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return prefs, fmt.Errorf("failed to scan preference: %w", err)
		}
		switch key {
		case PrefSelectedFolder:
			v := value
			prefs.SelectedFolder = &v
		case PrefAIMode:
			prefs.AIMode = ParseAIMode(value)
		case PrefHideSolvedByDefault:
			if b, err := strconv.ParseBool(value); err == nil {
				prefs.HideSolvedByDefault = b
			}
		case PrefHideNoContentByDefault:
			if b, err := strconv.ParseBool(value); err == nil {
				prefs.HideNoContentByDefault = b
			}
		case PrefLastScanAt:
			if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
				prefs.LastScanAt = fromMillis(ms)
			}
		case PrefOpenAIAPIKey:
			v := value
			prefs.OpenAIAPIKey = &v
		case PrefAutoProcessOnStartup:
			if b, err := strconv.ParseBool(value); err == nil {
				prefs.AutoProcessOnStartup = b
			}
		}
	}
	if err := rows.Err(); err != nil {
		return prefs, fmt.Errorf("error iterating preferences: %w", err)
	}
	return prefs, nil
}

func (r *PrefsRepo) set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO preferences (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to store preference %s: %w", key, err)
	}
	r.notify.Publish(Change{Topic: TopicPreferences, Op: "set", ID: key})
	return nil
}

func (r *PrefsRepo) remove(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM preferences WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to remove preference %s: %w", key, err)
	}
	r.notify.Publish(Change{Topic: TopicPreferences, Op: "remove", ID: key})
	return nil
}

func (r *PrefsRepo) SetSelectedFolder(ctx context.Context, folder *string) error {
	if folder == nil {
		return r.remove(ctx, PrefSelectedFolder)
	}
	return r.set(ctx, PrefSelectedFolder, *folder)
}

func (r *PrefsRepo) SetAIMode(ctx context.Context, mode AIMode) error {
	return r.set(ctx, PrefAIMode, string(ParseAIMode(string(mode))))
}

func (r *PrefsRepo) SetHideSolvedByDefault(ctx context.Context, hide bool) error {
	return r.set(ctx, PrefHideSolvedByDefault, strconv.FormatBool(hide))
}

func (r *PrefsRepo) SetHideNoContentByDefault(ctx context.Context, hide bool) error {
	return r.set(ctx, PrefHideNoContentByDefault, strconv.FormatBool(hide))
}

func (r *PrefsRepo) SetLastScanAt(ctx context.Context, at time.Time) error {
	return r.set(ctx, PrefLastScanAt, strconv.FormatInt(toMillis(at), 10))
}

func (r *PrefsRepo) SetOpenAIAPIKey(ctx context.Context, key *string) error {
	if key == nil {
		return r.remove(ctx, PrefOpenAIAPIKey)
	}
	return r.set(ctx, PrefOpenAIAPIKey, *key)
}

func (r *PrefsRepo) SetAutoProcessOnStartup(ctx context.Context, enabled bool) error {
	return r.set(ctx, PrefAutoProcessOnStartup, strconv.FormatBool(enabled))
}
