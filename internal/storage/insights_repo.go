package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_insight_store.go -package=mocks github.com/Fauli/screenshot-organizer/internal/storage InsightStore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"
)

// TimePeriod buckets items by capture time relative to now.
type TimePeriod string

const (
	PeriodToday     TimePeriod = "TODAY"
	PeriodThisWeek  TimePeriod = "THIS_WEEK"
	PeriodThisMonth TimePeriod = "THIS_MONTH"
	PeriodOlder     TimePeriod = "OLDER"
)

// TimePeriods lists the buckets from newest to oldest.
var TimePeriods = []TimePeriod{PeriodToday, PeriodThisWeek, PeriodThisMonth, PeriodOlder}

// Boundaries holds the start of each calendar bucket.
type Boundaries struct {
	TodayStart time.Time
	WeekStart  time.Time // Sunday midnight
	MonthStart time.Time
}

// TimeBoundaries computes bucket starts for now in now's location.
func TimeBoundaries(now time.Time) Boundaries {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return Boundaries{
		TodayStart: today,
		WeekStart:  today.AddDate(0, 0, -int(today.Weekday())),
		MonthStart: time.Date(y, m, 1, 0, 0, 0, 0, now.Location()),
	}
}

// Range returns the [from, to) capture window of a period. A zero bound is open.
func (b Boundaries) Range(p TimePeriod) (from, to time.Time) {
	switch p {
	case PeriodToday:
		return b.TodayStart, time.Time{}
	case PeriodThisWeek:
		return b.WeekStart, b.TodayStart
	case PeriodThisMonth:
		return b.MonthStart, b.WeekStart
	default:
		return time.Time{}, b.MonthStart
	}
}

// Count is a labelled tally.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Totals summarises the catalog.
type Totals struct {
	Total      int `json:"total"`
	Unsolved   int `json:"unsolved"`
	New        int `json:"new"`
	Processing int `json:"processing"`
	Done       int `json:"done"`
	Failed     int `json:"failed"`
	Pending    int `json:"pending"`
	NoContent  int `json:"no_content"`
}

// InsightStore defines aggregate queries over processed items.
// Counts only consider DONE items and are ordered by count descending.
type InsightStore interface {
	Totals(ctx context.Context) (Totals, error)
	DomainCounts(ctx context.Context, includeSolved bool) ([]Count, error)
	ContentTypeCounts(ctx context.Context, includeSolved bool) ([]Count, error)
	ActionCounts(ctx context.Context, includeSolved bool) ([]Count, error)
	TimePeriodCounts(ctx context.Context, now time.Time, includeSolved bool) ([]Count, error)
	TopicCounts(ctx context.Context, includeSolved bool) ([]Count, error)
}

// InsightsRepo implements InsightStore.
type InsightsRepo struct {
	db *sql.DB
}

// NewInsightsRepo creates a new InsightsRepo.
func NewInsightsRepo(db *sql.DB) *InsightsRepo {
	return &InsightsRepo{db: db}
}

// Totals summarises the catalog across all items.
func (r *InsightsRepo) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(solved = 0), 0),
			COALESCE(SUM(status = 'NEW'), 0),
			COALESCE(SUM(status = 'PROCESSING'), 0),
			COALESCE(SUM(status = 'DONE'), 0),
			COALESCE(SUM(status = 'FAILED'), 0),
			COALESCE(SUM(status != 'DONE'), 0),
			COALESCE(SUM(no_content = 1), 0)
		FROM screenshot_items`,
	).Scan(&t.Total, &t.Unsolved, &t.New, &t.Processing, &t.Done, &t.Failed, &t.Pending, &t.NoContent)
	if err != nil {
		return Totals{}, fmt.Errorf("failed to compute totals: %w", err)
	}
	return t, nil
}

func (r *InsightsRepo) counts(ctx context.Context, query string, args ...any) ([]Count, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query counts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := []Count{}
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counts: %w", err)
	}
	return counts, nil
}

// DomainCounts counts DONE items per non-empty domain.
func (r *InsightsRepo) DomainCounts(ctx context.Context, includeSolved bool) ([]Count, error) {
	return r.counts(ctx, `
		SELECT domain, COUNT(*) AS n FROM screenshot_items
		WHERE status = 'DONE' AND domain IS NOT NULL AND domain != '' AND (? OR solved = 0)
		GROUP BY domain ORDER BY n DESC, domain ASC`, includeSolved)
}

// ContentTypeCounts counts DONE items per known content type.
func (r *InsightsRepo) ContentTypeCounts(ctx context.Context, includeSolved bool) ([]Count, error) {
	return r.counts(ctx, `
		SELECT type, COUNT(*) AS n FROM screenshot_items
		WHERE status = 'DONE' AND type IS NOT NULL AND type != 'unknown' AND (? OR solved = 0)
		GROUP BY type ORDER BY n DESC, type ASC`, includeSolved)
}

// ActionCounts counts DONE items per known suggested action.
func (r *InsightsRepo) ActionCounts(ctx context.Context, includeSolved bool) ([]Count, error) {
	return r.counts(ctx, `
		SELECT e.suggested_action, COUNT(*) AS n
		FROM screenshot_items s INNER JOIN essences e ON s.id = e.screenshot_id
		WHERE s.status = 'DONE' AND e.suggested_action IS NOT NULL AND e.suggested_action != 'unknown'
		AND (? OR s.solved = 0)
		GROUP BY e.suggested_action ORDER BY n DESC, e.suggested_action ASC`, includeSolved)
}

// TimePeriodCounts counts DONE items per capture bucket relative to now.
func (r *InsightsRepo) TimePeriodCounts(ctx context.Context, now time.Time, includeSolved bool) ([]Count, error) {
	b := TimeBoundaries(now)
	return r.counts(ctx, `
		SELECT CASE
			WHEN captured_at >= ? THEN 'TODAY'
			WHEN captured_at >= ? THEN 'THIS_WEEK'
			WHEN captured_at >= ? THEN 'THIS_MONTH'
			ELSE 'OLDER'
		END AS period, COUNT(*) AS n
		FROM screenshot_items
		WHERE status = 'DONE' AND (? OR solved = 0)
		GROUP BY period ORDER BY n DESC, period ASC`,
		toMillis(b.TodayStart), toMillis(b.WeekStart), toMillis(b.MonthStart), includeSolved)
}

// TopicCounts aggregates essence topics of DONE, content-bearing items.
// Topics differing only in case are merged under the first spelling seen.
func (r *InsightsRepo) TopicCounts(ctx context.Context, includeSolved bool) ([]Count, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT e.topics_json
		FROM screenshot_items s INNER JOIN essences e ON s.id = e.screenshot_id
		WHERE s.status = 'DONE' AND s.no_content = 0 AND (? OR s.solved = 0)
		ORDER BY s.captured_at DESC, s.id ASC`, includeSolved)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	index := map[string]int{}
	counts := []Count{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan topics: %w", err)
		}
		for _, topic := range decodeStrings(raw) {
			topic = strings.TrimSpace(topic)
			if topic == "" {
				continue
			}
			key := strings.ToLower(topic)
			if i, ok := index[key]; ok {
				counts[i].Count++
				continue
			}
			index[key] = len(counts)
			counts = append(counts, Count{Label: topic, Count: 1})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating topics: %w", err)
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts, nil
}
