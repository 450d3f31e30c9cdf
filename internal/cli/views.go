package cli

import (
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Fauli/screenshot-organizer/internal/essence"
	"github.com/Fauli/screenshot-organizer/internal/orchestrator"
	"github.com/Fauli/screenshot-organizer/internal/scanner"
	"github.com/Fauli/screenshot-organizer/internal/service"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

const dateLayout = "2006-01-02 15:04"

type itemView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Status     string    `json:"status"`
	Type       string    `json:"type,omitempty"`
	Domain     string    `json:"domain,omitempty"`
	Solved     bool      `json:"solved"`
	NoContent  bool      `json:"no_content"`
	CapturedAt time.Time `json:"captured_at"`
	Error      string    `json:"error,omitempty"`
}

func newItemView(it storage.Item) itemView {
	v := itemView{
		ID:         it.ID,
		Name:       it.DisplayName,
		Path:       it.ContentURI,
		Status:     string(it.Status),
		Solved:     it.Solved,
		NoContent:  it.NoContent,
		CapturedAt: it.CapturedAt,
	}
	if it.Type != nil {
		v.Type = *it.Type
	}
	if it.Domain != nil {
		v.Domain = *it.Domain
	}
	if it.ErrorMessage != nil {
		v.Error = *it.ErrorMessage
	}
	return v
}

func newItemViews(items []storage.Item) []itemView {
	out := make([]itemView, 0, len(items))
	for _, it := range items {
		out = append(out, newItemView(it))
	}
	return out
}

func check(b bool) string {
	if b {
		return "✓"
	}
	return ""
}

func itemsTable(items []itemView) func(t table.Writer) {
	return func(t table.Writer) {
		t.AppendHeader(table.Row{"ID", "Name", "Status", "Type", "Domain", "Solved", "Captured"})
		for _, it := range items {
			t.AppendRow(table.Row{it.ID, it.Name, it.Status, it.Type, it.Domain, check(it.Solved), it.CapturedAt.Local().Format(dateLayout)})
		}
		t.AppendFooter(table.Row{"", "", "", "", "", "Total", len(items)})
	}
}

type essenceView struct {
	essence.Essence
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

type detailView struct {
	itemView
	OCRText string       `json:"ocr_text,omitempty"`
	Essence *essenceView `json:"essence,omitempty"`
}

func newDetailView(d service.ItemDetail) detailView {
	v := detailView{itemView: newItemView(d.Item)}
	if d.Item.OCRText != nil {
		v.OCRText = *d.Item.OCRText
	}
	if d.Essence != nil {
		v.Essence = &essenceView{
			Essence:   d.Essence.Essence,
			Model:     d.Essence.ModelName,
			CreatedAt: d.Essence.CreatedAt,
		}
	}
	return v
}

func (v detailView) fill(t table.Writer) {
	t.AppendRows([]table.Row{
		{"ID", v.ID},
		{"Name", v.Name},
		{"Path", v.Path},
		{"Status", v.Status},
		{"Captured", v.CapturedAt.Local().Format(dateLayout)},
		{"Solved", check(v.Solved)},
	})
	if v.Error != "" {
		t.AppendRow(table.Row{"Error", v.Error})
	}
	if v.Essence == nil {
		return
	}
	e := v.Essence
	names := make([]string, 0, len(e.Entities))
	for _, ent := range e.Entities {
		names = append(names, ent.Name+" ("+string(ent.Kind)+")")
	}
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Title", e.Title},
		{"Type", e.Type},
		{"Domain", v.Domain},
		{"Summary", strings.Join(e.SummaryBullets, "\n")},
		{"Topics", strings.Join(e.Topics, ", ")},
		{"Entities", strings.Join(names, ", ")},
		{"Action", e.SuggestedAction},
		{"Model", e.Model},
	})
}

type scanView struct {
	Status string `json:"status"`
	scanner.Counts
	Processing *orchestrator.BatchResult `json:"processing,omitempty"`
}

func (v scanView) fill(t table.Writer) {
	t.AppendHeader(table.Row{"Scanned", "New", "Skipped", "Errors"})
	t.AppendRow(table.Row{v.Scanned, v.New, v.Skipped, v.Errors})
	if p := v.Processing; p != nil {
		t.AppendSeparator()
		t.AppendRow(table.Row{"Processed", "Succeeded", "Failed", "No content"})
		t.AppendRow(table.Row{p.Processed, p.Succeeded, p.Failed, p.NoContent})
	}
}

func batchTable(r orchestrator.BatchResult) func(t table.Writer) {
	return func(t table.Writer) {
		t.AppendHeader(table.Row{"Processed", "Succeeded", "Failed", "No content"})
		t.AppendRow(table.Row{r.Processed, r.Succeeded, r.Failed, r.NoContent})
		if r.HasMore {
			t.AppendFooter(table.Row{"", "", "", "more pending"})
		}
	}
}

func progressTable(p orchestrator.Progress) func(t table.Writer) {
	return func(t table.Writer) {
		t.AppendHeader(table.Row{"Total", "New", "Processing", "Done", "Failed", "Pending"})
		t.AppendRow(table.Row{p.Total, p.New, p.Processing, p.Done, p.Failed, p.Pending})
	}
}

type prefsView struct {
	SelectedFolder         string     `json:"selected_folder,omitempty"`
	AIMode                 string     `json:"ai_mode"`
	HideSolvedByDefault    bool       `json:"hide_solved_by_default"`
	HideNoContentByDefault bool       `json:"hide_no_content_by_default"`
	HasAPIKey              bool       `json:"has_api_key"`
	AutoProcessOnStartup   bool       `json:"auto_process_on_startup"`
	LastScanAt             *time.Time `json:"last_scan_at,omitempty"`
}

func newPrefsView(p storage.Preferences) prefsView {
	v := prefsView{
		AIMode:                 string(p.AIMode),
		HideSolvedByDefault:    p.HideSolvedByDefault,
		HideNoContentByDefault: p.HideNoContentByDefault,
		HasAPIKey:              p.HasAPIKey(),
		AutoProcessOnStartup:   p.AutoProcessOnStartup,
	}
	if p.SelectedFolder != nil {
		v.SelectedFolder = *p.SelectedFolder
	}
	if !p.LastScanAt.IsZero() {
		at := p.LastScanAt
		v.LastScanAt = &at
	}
	return v
}

func (v prefsView) fill(t table.Writer) {
	lastScan := "never"
	if v.LastScanAt != nil {
		lastScan = v.LastScanAt.Local().Format(dateLayout)
	}
	t.AppendHeader(table.Row{"Key", "Value"})
	t.AppendRows([]table.Row{
		{keySelectedFolder, v.SelectedFolder},
		{keyAIMode, v.AIMode},
		{keyHideSolved, v.HideSolvedByDefault},
		{keyHideNoContent, v.HideNoContentByDefault},
		{keyAPIKey, check(v.HasAPIKey)},
		{keyAutoProcess, v.AutoProcessOnStartup},
		{"last_scan_at", lastScan},
	})
}

type insightsView struct {
	Totals  storage.Totals  `json:"totals"`
	Domains []storage.Count `json:"domains"`
	Types   []storage.Count `json:"types"`
	Actions []storage.Count `json:"actions"`
	Periods []storage.Count `json:"periods"`
	Topics  []storage.Count `json:"topics"`
}

func newInsightsView(in service.Insights) insightsView {
	orEmpty := func(c []storage.Count) []storage.Count {
		if c == nil {
			return []storage.Count{}
		}
		return c
	}
	return insightsView{
		Totals:  in.Totals,
		Domains: orEmpty(in.Domains),
		Types:   orEmpty(in.Types),
		Actions: orEmpty(in.Actions),
		Periods: orEmpty(in.Periods),
		Topics:  orEmpty(in.Topics),
	}
}

func (v insightsView) fill(t table.Writer) {
	tot := v.Totals
	t.AppendHeader(table.Row{"Group", "Label", "Count"})
	t.AppendRows([]table.Row{
		{"totals", "total", tot.Total},
		{"totals", "unsolved", tot.Unsolved},
		{"totals", "done", tot.Done},
		{"totals", "pending", tot.Pending},
		{"totals", "failed", tot.Failed},
		{"totals", "no content", tot.NoContent},
	})
	for _, g := range []struct {
		name   string
		counts []storage.Count
	}{
		{"domain", v.Domains},
		{"type", v.Types},
		{"action", v.Actions},
		{"period", v.Periods},
		{"topic", v.Topics},
	} {
		if len(g.counts) == 0 {
			continue
		}
		t.AppendSeparator()
		for _, c := range g.counts {
			t.AppendRow(table.Row{g.name, c.Label, c.Count})
		}
	}
}
