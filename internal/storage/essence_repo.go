package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_essence_store.go -package=mocks github.com/Fauli/screenshot-organizer/internal/storage EssenceStore

import (
	"context"
	"database/sql"
	"fmt"
)

// EssenceStore defines the interface for essence storage operations.
type EssenceStore interface {
	// Upsert stores an essence, replacing any previous one for the same screenshot.
	Upsert(ctx context.Context, rec *EssenceRecord) error
	// GetByScreenshotID returns the essence for a screenshot. Returns ErrNotFound if none exists.
	GetByScreenshotID(ctx context.Context, screenshotID string) (*EssenceRecord, error)
	// Delete removes the essence for a screenshot. Missing essences are not an error.
	Delete(ctx context.Context, screenshotID string) error
	// DeleteAll removes every essence.
	DeleteAll(ctx context.Context) error
	// All returns every essence.
	All(ctx context.Context) ([]EssenceRecord, error)
	// Count returns the number of stored essences.
	Count(ctx context.Context) (int, error)
}

const essenceColumns = `screenshot_id, title, summary_bullets_json, topics_json, entities_json,
	suggested_action, confidence, model_name, created_at`

// EssenceRepo provides methods for essence operations.
// It implements the EssenceStore interface.
type EssenceRepo struct {
	db     *sql.DB
	notify *Notifier
}

// NewEssenceRepo creates a new EssenceRepo. notify may be nil.
func NewEssenceRepo(db *sql.DB, notify *Notifier) *EssenceRepo {
	return &EssenceRepo{db: db, notify: notify}
}

func scanEssence(row rowScanner) (*EssenceRecord, error) {
	var (
		rec       EssenceRecord
		createdAt int64
	)
	err := row.Scan(
		&rec.ScreenshotID, &rec.Title, &rec.SummaryBulletsJSON, &rec.TopicsJSON, &rec.EntitiesJSON,
		&rec.SuggestedAction, &rec.Confidence, &rec.ModelName, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = fromMillis(createdAt)
	return &rec, nil
}

// Upsert stores an essence, replacing any previous one for the same screenshot.
func (r *EssenceRepo) Upsert(ctx context.Context, rec *EssenceRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO essences (`+essenceColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(screenshot_id) DO UPDATE SET
		   title = excluded.title,
		   summary_bullets_json = excluded.summary_bullets_json,
		   topics_json = excluded.topics_json,
		   entities_json = excluded.entities_json,
		   suggested_action = excluded.suggested_action,
		   confidence = excluded.confidence,
		   model_name = excluded.model_name,
		   created_at = excluded.created_at`,
		rec.ScreenshotID, rec.Title, orEmptyList(rec.SummaryBulletsJSON), orEmptyList(rec.TopicsJSON),
		orEmptyList(rec.EntitiesJSON), rec.SuggestedAction, rec.Confidence, rec.ModelName, toMillis(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert essence: %w", err)
	}
	r.notify.Publish(Change{Topic: TopicEssences, Op: "upsert", ID: rec.ScreenshotID})
	return nil
}

func orEmptyList(raw string) string {
	if raw == "" {
		return "[]"
	}
	return raw
}

// GetByScreenshotID returns the essence for a screenshot. Returns ErrNotFound if none exists.
func (r *EssenceRepo) GetByScreenshotID(ctx context.Context, screenshotID string) (*EssenceRecord, error) {
	rec, err := scanEssence(r.db.QueryRowContext(ctx,
		"SELECT "+essenceColumns+" FROM essences WHERE screenshot_id = ?", screenshotID,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query essence: %w", err)
	}
	return rec, nil
}

// Delete removes the essence for a screenshot.
func (r *EssenceRepo) Delete(ctx context.Context, screenshotID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM essences WHERE screenshot_id = ?", screenshotID)
	if err != nil {
		return fmt.Errorf("failed to delete essence: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		r.notify.Publish(Change{Topic: TopicEssences, Op: "delete", ID: screenshotID})
	}
	return nil
}

// DeleteAll removes every essence.
func (r *EssenceRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM essences"); err != nil {
		return fmt.Errorf("failed to delete essences: %w", err)
	}
	r.notify.Publish(Change{Topic: TopicEssences, Op: "clear"})
	return nil
}

// All returns every essence.
func (r *EssenceRepo) All(ctx context.Context) ([]EssenceRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+essenceColumns+" FROM essences ORDER BY screenshot_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list essences: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := []EssenceRecord{}
	for rows.Next() {
		rec, err := scanEssence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan essence: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating essences: %w", err)
	}
	return records, nil
}

// Count returns the number of stored essences.
func (r *EssenceRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM essences").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count essences: %w", err)
	}
	return n, nil
}
