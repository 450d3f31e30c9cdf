package storage

import (
	"context"
	"testing"
	"time"
)

func TestTimeBoundaries(t *testing.T) {
	// Wednesday 2024-05-15 14:30 UTC
	now := time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)
	b := TimeBoundaries(now)

	if want := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC); !b.TodayStart.Equal(want) {
		t.Errorf("TodayStart = %v, want %v", b.TodayStart, want)
	}
	if want := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC); !b.WeekStart.Equal(want) {
		t.Errorf("WeekStart = %v, want %v", b.WeekStart, want)
	}
	if want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC); !b.MonthStart.Equal(want) {
		t.Errorf("MonthStart = %v, want %v", b.MonthStart, want)
	}

	from, to := b.Range(PeriodThisWeek)
	if !from.Equal(b.WeekStart) || !to.Equal(b.TodayStart) {
		t.Errorf("Range(THIS_WEEK) = %v..%v", from, to)
	}
	from, to = b.Range(PeriodOlder)
	if !from.IsZero() || !to.Equal(b.MonthStart) {
		t.Errorf("Range(OLDER) = %v..%v", from, to)
	}
}

func countsByLabel(counts []Count) map[string]int {
	m := make(map[string]int, len(counts))
	for _, c := range counts {
		m[c.Label] = c.Count
	}
	return m
}

func TestInsightsRepo(t *testing.T) {
	db := newTestDB(t)
	items := NewItemRepo(db, nil)
	essences := NewEssenceRepo(db, nil)
	repo := NewInsightsRepo(db)
	ctx := context.Background()
	now := time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)

	seed := []struct {
		id         string
		capturedAt time.Time
		status     Status
		solved     bool
		noContent  bool
		domain     string
		typ        string
		action     string
		topics     string
	}{
		{id: "a", capturedAt: now.Add(-time.Hour), status: StatusDone, domain: "github.com", typ: "code", action: "reference", topics: `["Go","Testing"]`},
		{id: "b", capturedAt: time.Date(2024, 5, 13, 9, 0, 0, 0, time.UTC), status: StatusDone, domain: "github.com", typ: "code", action: "try", topics: `["go"]`},
		{id: "c", capturedAt: time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC), status: StatusDone, domain: "shop.example", typ: "product", action: "buy", topics: `["Shoes"]`},
		{id: "d", capturedAt: time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC), status: StatusDone, solved: true, domain: "shop.example", typ: "unknown", action: "unknown", topics: `["Shoes"]`},
		{id: "e", capturedAt: now, status: StatusDone, noContent: true, typ: "unknown", action: "unknown", topics: `["Ignored"]`},
		{id: "f", capturedAt: now, status: StatusNew},
		{id: "g", capturedAt: now, status: StatusFailed},
	}
	for _, s := range seed {
		item := newTestItem(s.id, s.capturedAt)
		item.Status = s.status
		item.Solved = s.solved
		item.NoContent = s.noContent
		if s.domain != "" {
			item.Domain = strPtr(s.domain)
		}
		if s.typ != "" {
			item.Type = strPtr(s.typ)
		}
		if err := items.Insert(ctx, item); err != nil {
			t.Fatalf("Insert(%s) error = %v", s.id, err)
		}
		if s.action != "" {
			err := essences.Upsert(ctx, &EssenceRecord{
				ScreenshotID: s.id, Title: s.id, TopicsJSON: s.topics,
				SuggestedAction: strPtr(s.action), ModelName: "m", CreatedAt: now,
			})
			if err != nil {
				t.Fatalf("Upsert(%s) error = %v", s.id, err)
			}
		}
	}

	t.Run("totals", func(t *testing.T) {
		got, err := repo.Totals(ctx)
		if err != nil {
			t.Fatalf("Totals() error = %v", err)
		}
		want := Totals{Total: 7, Unsolved: 6, New: 1, Done: 5, Failed: 1, Pending: 2, NoContent: 1}
		if got != want {
			t.Errorf("Totals() = %+v, want %+v", got, want)
		}
	})

	tests := []struct {
		name          string
		run           func(bool) ([]Count, error)
		includeSolved bool
		want          map[string]int
	}{
		{
			name: "domains",
			run:  func(s bool) ([]Count, error) { return repo.DomainCounts(ctx, s) },
			want: map[string]int{"github.com": 2, "shop.example": 1},
		},
		{
			name:          "domains with solved",
			run:           func(s bool) ([]Count, error) { return repo.DomainCounts(ctx, s) },
			includeSolved: true,
			want:          map[string]int{"github.com": 2, "shop.example": 2},
		},
		{
			name: "content types skip unknown",
			run:  func(s bool) ([]Count, error) { return repo.ContentTypeCounts(ctx, s) },
			want: map[string]int{"code": 2, "product": 1},
		},
		{
			name: "actions skip unknown",
			run:  func(s bool) ([]Count, error) { return repo.ActionCounts(ctx, s) },
			want: map[string]int{"reference": 1, "try": 1, "buy": 1},
		},
		{
			name: "time periods",
			run:  func(s bool) ([]Count, error) { return repo.TimePeriodCounts(ctx, now, s) },
			want: map[string]int{"TODAY": 2, "THIS_WEEK": 1, "THIS_MONTH": 1},
		},
		{
			name:          "time periods with solved",
			run:           func(s bool) ([]Count, error) { return repo.TimePeriodCounts(ctx, now, s) },
			includeSolved: true,
			want:          map[string]int{"TODAY": 2, "THIS_WEEK": 1, "THIS_MONTH": 1, "OLDER": 1},
		},
		{
			name: "topics merge case and skip no content",
			run:  func(s bool) ([]Count, error) { return repo.TopicCounts(ctx, s) },
			want: map[string]int{"Go": 2, "Testing": 1, "Shoes": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run(tt.includeSolved)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			gotMap := countsByLabel(got)
			if len(gotMap) != len(tt.want) {
				t.Fatalf("counts = %v, want %v", gotMap, tt.want)
			}
			for label, n := range tt.want {
				if gotMap[label] != n {
					t.Errorf("count[%s] = %d, want %d", label, gotMap[label], n)
				}
			}
			for i := 1; i < len(got); i++ {
				if got[i-1].Count < got[i].Count {
					t.Errorf("counts not sorted descending: %v", got)
				}
			}
		})
	}
}
