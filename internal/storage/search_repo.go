package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_search_index.go -package=mocks github.com/Fauli/screenshot-organizer/internal/storage SearchIndex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// DefaultSearchLimit caps search results when no limit is given.
const DefaultSearchLimit = 50

// SearchIndex defines the interface for full-text search operations.
type SearchIndex interface {
	// Index stores doc, replacing any existing entry for the same screenshot.
	Index(ctx context.Context, doc SearchDocument) error
	// Remove deletes the entry for a screenshot. Missing entries are not an error.
	Remove(ctx context.Context, screenshotID string) error
	// Clear deletes every entry.
	Clear(ctx context.Context) error
	// Count returns the number of indexed screenshots.
	Count(ctx context.Context) (int, error)
	// Search returns items whose indexed text matches every query token as a prefix.
	Search(ctx context.Context, query string, includeSolved bool, limit int) ([]Item, error)
}

// SearchRepo implements SearchIndex on an FTS4 virtual table.
type SearchRepo struct {
	db     *sql.DB
	notify *Notifier
}

// NewSearchRepo creates a new SearchRepo. notify may be nil.
func NewSearchRepo(db *sql.DB, notify *Notifier) *SearchRepo {
	return &SearchRepo{db: db, notify: notify}
}

// Index stores doc, replacing any existing entry for the same screenshot.
func (r *SearchRepo) Index(ctx context.Context, doc SearchDocument) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM search_index WHERE screenshot_id = ?", doc.ScreenshotID); err != nil {
		return fmt.Errorf("failed to remove stale search entry: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO search_index (screenshot_id, title, summary, topics, entities, ocr_text, domain, type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ScreenshotID,
		doc.Title,
		strings.Join(doc.SummaryBullets, " "),
		strings.Join(doc.Topics, " "),
		strings.Join(doc.Entities, " "),
		doc.OCRText,
		doc.Domain,
		doc.Type,
	)
	if err != nil {
		return fmt.Errorf("failed to insert search entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit search entry: %w", err)
	}
	r.notify.Publish(Change{Topic: TopicSearch, Op: "index", ID: doc.ScreenshotID})
	return nil
}

// Remove deletes the entry for a screenshot.
func (r *SearchRepo) Remove(ctx context.Context, screenshotID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM search_index WHERE screenshot_id = ?", screenshotID)
	if err != nil {
		return fmt.Errorf("failed to remove search entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		r.notify.Publish(Change{Topic: TopicSearch, Op: "remove", ID: screenshotID})
	}
	return nil
}

// Clear deletes every entry.
func (r *SearchRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM search_index"); err != nil {
		return fmt.Errorf("failed to clear search index: %w", err)
	}
	r.notify.Publish(Change{Topic: TopicSearch, Op: "clear"})
	return nil
}

// Count returns the number of indexed screenshots.
func (r *SearchRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM search_index").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count search entries: %w", err)
	}
	return n, nil
}

// Search returns items whose indexed text matches every query token as a
// prefix, newest capture first. A blank query returns no results. A query
// that SQLite cannot parse as a match expression also returns no results.
func (r *SearchRepo) Search(ctx context.Context, query string, includeSolved bool, limit int) ([]Item, error) {
	expr := MatchExpression(query)
	if expr == "" {
		return []Item{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM screenshot_items
		 WHERE id IN (SELECT screenshot_id FROM search_index WHERE search_index MATCH ?)
		 AND (? OR solved = 0)
		 ORDER BY captured_at DESC, id ASC
		 LIMIT ?`,
		expr, includeSolved, limit,
	)
	if err != nil {
		if isMatchSyntaxError(err) {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items, err := scanItems(rows)
	if err != nil && isMatchSyntaxError(err) {
		return []Item{}, nil
	}
	return items, err
}

// MatchExpression turns free text into an FTS prefix query: whitespace
// separated tokens, each suffixed with '*'.
func MatchExpression(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	for i, f := range fields {
		fields[i] = f + "*"
	}
	return strings.Join(fields, " ")
}

func isMatchSyntaxError(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrError
}
