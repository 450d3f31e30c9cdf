package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_item_store.go -package=mocks github.com/Fauli/screenshot-organizer/internal/storage ItemStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert collides with an existing fingerprint or locator.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalidTransition is returned when a status change is not allowed from the current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ItemStore defines the interface for screenshot item storage operations.
type ItemStore interface {
	// Insert stores a new item. Returns ErrDuplicate if the fingerprint or locator exists.
	Insert(ctx context.Context, item *Item) error
	// ExistsBySHA256 reports whether an item with the fingerprint exists.
	ExistsBySHA256(ctx context.Context, sha256 string) (bool, error)
	// GetByID gets an item by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Item, error)
	// List returns items ordered by capture time, newest first.
	List(ctx context.Context, q ListQuery) ([]Item, error)
	// ListByStatus returns up to limit items with the status, oldest capture first.
	ListByStatus(ctx context.Context, status Status, limit int) ([]Item, error)
	// CountByStatus counts items with the status.
	CountByStatus(ctx context.Context, status Status) (int, error)
	// MarkProcessing moves an item from NEW to PROCESSING.
	MarkProcessing(ctx context.Context, id string) error
	// MarkDone moves an item from PROCESSING to DONE and stores derived fields.
	MarkDone(ctx context.Context, id string, u DoneUpdate) error
	// MarkFailed moves an item from PROCESSING to FAILED with a reason.
	MarkFailed(ctx context.Context, id string, reason string) error
	// ResetToNew moves a DONE or FAILED item back to NEW.
	ResetToNew(ctx context.Context, id string) error
	// ResetAllToNew moves every item to NEW and clears no-content flags.
	ResetAllToNew(ctx context.Context) (int64, error)
	// ResetStuck moves every PROCESSING item back to NEW.
	ResetStuck(ctx context.Context) (int64, error)
	// SetSolved sets the user solved flag.
	SetSolved(ctx context.Context, id string, solved bool) error
	// Delete removes an item; its essence and search entry go with it.
	Delete(ctx context.Context, id string) error
	// All returns every item ordered by capture time, newest first.
	All(ctx context.Context) ([]Item, error)
}

const itemColumns = `id, content_uri, sha256, display_name, mime_type, size_bytes, width, height,
	captured_at, ingested_at, status, error_message, solved, no_content, domain, type, ocr_text`

// ItemRepo provides methods for screenshot item operations.
// It implements the ItemStore interface.
type ItemRepo struct {
	db     *sql.DB
	notify *Notifier
}

// NewItemRepo creates a new ItemRepo. notify may be nil.
func NewItemRepo(db *sql.DB, notify *Notifier) *ItemRepo {
	return &ItemRepo{db: db, notify: notify}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	var (
		item       Item
		capturedAt int64
		ingestedAt int64
		status     string
	)
	err := row.Scan(
		&item.ID, &item.ContentURI, &item.SHA256, &item.DisplayName, &item.MimeType,
		&item.SizeBytes, &item.Width, &item.Height, &capturedAt, &ingestedAt, &status,
		&item.ErrorMessage, &item.Solved, &item.NoContent, &item.Domain, &item.Type, &item.OCRText,
	)
	if err != nil {
		return nil, err
	}
	item.CapturedAt = fromMillis(capturedAt)
	item.IngestedAt = fromMillis(ingestedAt)
	item.Status = ParseStatus(status)
	return &item, nil
}

func scanItems(rows *sql.Rows) ([]Item, error) {
	items := []Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}
	return items, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// Insert stores a new item. Returns ErrDuplicate if the fingerprint, locator or ID exists.
func (r *ItemRepo) Insert(ctx context.Context, item *Item) error {
	if item.Status == "" {
		item.Status = StatusNew
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO screenshot_items (`+itemColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.ContentURI, item.SHA256, item.DisplayName, item.MimeType,
		item.SizeBytes, item.Width, item.Height, toMillis(item.CapturedAt), toMillis(item.IngestedAt),
		string(item.Status), item.ErrorMessage, item.Solved, item.NoContent, item.Domain, item.Type, item.OCRText,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert item: %w", err)
	}
	r.notify.Publish(Change{Topic: TopicItems, Op: "insert", ID: item.ID})
	return nil
}

// ExistsBySHA256 reports whether an item with the fingerprint exists.
func (r *ItemRepo) ExistsBySHA256(ctx context.Context, sha256 string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM screenshot_items WHERE sha256 = ?)", sha256,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check fingerprint: %w", err)
	}
	return exists, nil
}

// GetByID gets an item by ID. Returns ErrNotFound if not found.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*Item, error) {
	item, err := scanItem(r.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM screenshot_items WHERE id = ?", id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query item: %w", err)
	}
	return item, nil
}

// List returns items matching q ordered by capture time, newest first.
func (r *ItemRepo) List(ctx context.Context, q ListQuery) ([]Item, error) {
	var (
		where []string
		args  []any
	)

	switch q.Filter {
	case FilterProcessed:
		where = append(where, "status = 'DONE'")
	case FilterPending:
		where = append(where, "status IN ('NEW', 'PROCESSING')")
	}
	if !q.IncludeSolved {
		where = append(where, "solved = 0")
	}
	if !q.IncludeNoContent {
		where = append(where, "no_content = 0")
	}
	if q.Domain != "" {
		where = append(where, "domain = ?")
		args = append(args, q.Domain)
	}
	if q.Type != "" {
		where = append(where, "LOWER(type) = LOWER(?)")
		args = append(args, q.Type)
	}
	if q.Action != "" {
		where = append(where, "id IN (SELECT screenshot_id FROM essences WHERE LOWER(suggested_action) = LOWER(?))")
		args = append(args, q.Action)
	}
	if q.Topic != "" {
		where = append(where, `id IN (SELECT screenshot_id FROM essences WHERE topics_json LIKE '%"' || ? || '"%')`)
		args = append(args, q.Topic)
	}
	if !q.From.IsZero() {
		where = append(where, "captured_at >= ?")
		args = append(args, toMillis(q.From))
	}
	if !q.To.IsZero() {
		where = append(where, "captured_at < ?")
		args = append(args, toMillis(q.To))
	}

	query := "SELECT " + itemColumns + " FROM screenshot_items"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY captured_at DESC, id ASC"

	limit := q.Limit
	if limit <= 0 {
		limit = -1
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanItems(rows)
}

// ListByStatus returns up to limit items with the status, oldest capture first.
// Ties are broken by ID so batches are deterministic.
func (r *ItemRepo) ListByStatus(ctx context.Context, status Status, limit int) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM screenshot_items WHERE status = ? ORDER BY captured_at ASC, id ASC LIMIT ?",
		string(status), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by status: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanItems(rows)
}

// CountByStatus counts items with the status.
func (r *ItemRepo) CountByStatus(ctx context.Context, status Status) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM screenshot_items WHERE status = ?", string(status),
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return n, nil
}

// transition runs a conditional status update. When no row changes it
// reports ErrNotFound or ErrInvalidTransition.
func (r *ItemRepo) transition(ctx context.Context, id string, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update item status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrInvalidTransition
	}
	r.notify.Publish(Change{Topic: TopicItems, Op: "update", ID: id})
	return nil
}

// MarkProcessing moves an item from NEW to PROCESSING.
func (r *ItemRepo) MarkProcessing(ctx context.Context, id string) error {
	return r.transition(ctx, id,
		"UPDATE screenshot_items SET status = 'PROCESSING', error_message = NULL WHERE id = ? AND status = 'NEW'",
		id,
	)
}

// MarkDone moves an item from PROCESSING to DONE and stores the derived fields.
func (r *ItemRepo) MarkDone(ctx context.Context, id string, u DoneUpdate) error {
	var contentType *string
	if u.Type != "" {
		t := strings.ToLower(u.Type)
		contentType = &t
	}
	return r.transition(ctx, id,
		`UPDATE screenshot_items
		 SET status = 'DONE', error_message = NULL, domain = ?, type = ?, ocr_text = ?, no_content = ?
		 WHERE id = ? AND status = 'PROCESSING'`,
		u.Domain, contentType, u.OCRText, u.NoContent, id,
	)
}

// MarkFailed moves an item from PROCESSING to FAILED with a reason.
func (r *ItemRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	return r.transition(ctx, id,
		"UPDATE screenshot_items SET status = 'FAILED', error_message = ? WHERE id = ? AND status = 'PROCESSING'",
		reason, id,
	)
}

// ResetToNew moves a DONE or FAILED item back to NEW. An item that is already
// NEW is left unchanged. The no-content flag is not touched.
func (r *ItemRepo) ResetToNew(ctx context.Context, id string) error {
	err := r.transition(ctx, id,
		"UPDATE screenshot_items SET status = 'NEW', error_message = NULL WHERE id = ? AND status IN ('DONE', 'FAILED')",
		id,
	)
	if errors.Is(err, ErrInvalidTransition) {
		item, getErr := r.GetByID(ctx, id)
		if getErr == nil && item.Status == StatusNew {
			return nil
		}
	}
	return err
}

// ResetAllToNew moves every item to NEW, clears errors and no-content flags.
func (r *ItemRepo) ResetAllToNew(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE screenshot_items SET status = 'NEW', error_message = NULL, no_content = 0",
	)
	if err != nil {
		return 0, fmt.Errorf("failed to reset items: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	r.notify.Publish(Change{Topic: TopicItems, Op: "reset"})
	return n, nil
}

// ResetStuck moves every PROCESSING item back to NEW.
func (r *ItemRepo) ResetStuck(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE screenshot_items SET status = 'NEW', error_message = NULL WHERE status = 'PROCESSING'",
	)
	if err != nil {
		return 0, fmt.Errorf("failed to reset stuck items: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n > 0 {
		r.notify.Publish(Change{Topic: TopicItems, Op: "reset"})
	}
	return n, nil
}

// SetSolved sets the user solved flag.
func (r *ItemRepo) SetSolved(ctx context.Context, id string, solved bool) error {
	res, err := r.db.ExecContext(ctx, "UPDATE screenshot_items SET solved = ? WHERE id = ?", solved, id)
	if err != nil {
		return fmt.Errorf("failed to update solved flag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	r.notify.Publish(Change{Topic: TopicItems, Op: "update", ID: id})
	return nil
}

// Delete removes an item. The essence cascades through the foreign key and the
// search entry is removed by trigger.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM screenshot_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	r.notify.Publish(Change{Topic: TopicItems, Op: "delete", ID: id})
	return nil
}

// All returns every item ordered by capture time, newest first.
func (r *ItemRepo) All(ctx context.Context) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM screenshot_items ORDER BY captured_at DESC, id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanItems(rows)
}
