package storage

import (
	"context"
	"testing"
	"time"
)

func TestMatchExpression(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "blank", query: "   ", want: ""},
		{name: "single token", query: "recipe", want: "recipe*"},
		{name: "multiple tokens", query: "  go   release\tnotes ", want: "go* release* notes*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchExpression(tt.query); got != tt.want {
				t.Errorf("MatchExpression(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func seedSearch(t *testing.T) (*SearchRepo, *ItemRepo) {
	t.Helper()
	db := newTestDB(t)
	items := NewItemRepo(db, nil)
	search := NewSearchRepo(db, nil)
	ctx := context.Background()
	base := time.UnixMilli(1_700_000_000_000)

	docs := []struct {
		id     string
		offset time.Duration
		solved bool
		doc    SearchDocument
	}{
		{
			id:     "pasta",
			offset: 0,
			doc: SearchDocument{
				Title:          "Creamy Pasta Recipe",
				SummaryBullets: []string{"Ingredients: cream, pasta"},
				Topics:         []string{"Cooking"},
				Domain:         "recipes.example.com",
				Type:           "recipe",
			},
		},
		{
			id:     "release",
			offset: time.Hour,
			doc: SearchDocument{
				Title:    "Go 1.25 Release Notes",
				Topics:   []string{"Programming"},
				Entities: []string{"Google"},
				OCRText:  "the release includes generic type aliases",
				Type:     "article",
			},
		},
		{
			id:     "solved-recipe",
			offset: 2 * time.Hour,
			solved: true,
			doc: SearchDocument{
				Title: "Another recipe",
				Type:  "recipe",
			},
		},
	}

	for _, d := range docs {
		item := newTestItem(d.id, base.Add(d.offset))
		item.Status = StatusDone
		item.Solved = d.solved
		if err := items.Insert(ctx, item); err != nil {
			t.Fatalf("Insert(%s) error = %v", d.id, err)
		}
		d.doc.ScreenshotID = d.id
		if err := search.Index(ctx, d.doc); err != nil {
			t.Fatalf("Index(%s) error = %v", d.id, err)
		}
	}
	return search, items
}

func TestSearchRepo_Search(t *testing.T) {
	search, _ := seedSearch(t)
	ctx := context.Background()

	tests := []struct {
		name          string
		query         string
		includeSolved bool
		limit         int
		want          []string
	}{
		{name: "prefix match", query: "pas", want: []string{"pasta"}},
		{name: "case insensitive", query: "RELEASE", want: []string{"release"}},
		{name: "matches ocr text", query: "generic aliases", want: []string{"release"}},
		{name: "matches entities", query: "goog", want: []string{"release"}},
		{name: "solved hidden", query: "recipe", want: []string{"pasta"}},
		{name: "solved included newest first", query: "recipe", includeSolved: true, want: []string{"solved-recipe", "pasta"}},
		{name: "limit", query: "recipe", includeSolved: true, limit: 1, want: []string{"solved-recipe"}},
		{name: "all tokens required", query: "pasta release", want: nil},
		{name: "blank query", query: "  ", want: nil},
		{name: "malformed expression", query: `"unbalanced`, want: nil},
		{name: "no match", query: "kubernetes", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := search.Search(ctx, tt.query, tt.includeSolved, tt.limit)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) = %v, want %v", tt.query, ids(got), tt.want)
			}
			for i := range tt.want {
				if got[i].ID != tt.want[i] {
					t.Errorf("Search()[%d] = %s, want %s", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestSearchRepo_IndexReplacesAndRemoves(t *testing.T) {
	search, items := seedSearch(t)
	ctx := context.Background()

	if err := search.Index(ctx, SearchDocument{ScreenshotID: "pasta", Title: "Risotto"}); err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if n, _ := search.Count(ctx); n != 3 {
		t.Errorf("Count() after replace = %d, want 3", n)
	}
	if got, _ := search.Search(ctx, "pasta", false, 0); len(got) != 0 {
		t.Errorf("stale entry still matches: %v", ids(got))
	}
	if got, _ := search.Search(ctx, "risotto", false, 0); len(got) != 1 {
		t.Errorf("replacement not found")
	}

	if err := search.Remove(ctx, "pasta"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := search.Remove(ctx, "pasta"); err != nil {
		t.Errorf("Remove() missing entry error = %v", err)
	}

	// Deleting an item drops its entry through the trigger.
	if err := items.Delete(ctx, "release"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if n, _ := search.Count(ctx); n != 1 {
		t.Errorf("Count() after removals = %d, want 1", n)
	}

	if err := search.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n, _ := search.Count(ctx); n != 0 {
		t.Errorf("Count() after Clear = %d, want 0", n)
	}
}
