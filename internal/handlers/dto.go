package handlers

import (
	"time"

	"github.com/Fauli/screenshot-organizer/internal/essence"
	"github.com/Fauli/screenshot-organizer/internal/service"
	"github.com/Fauli/screenshot-organizer/internal/storage"
)

// ItemResponse is the JSON form of a catalog item.
type ItemResponse struct {
	ID           string    `json:"id"`
	ContentURI   string    `json:"content_uri"`
	SHA256       string    `json:"sha256"`
	DisplayName  string    `json:"display_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	CapturedAt   time.Time `json:"captured_at"`
	IngestedAt   time.Time `json:"ingested_at"`
	Status       string    `json:"status"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	Solved       bool      `json:"solved"`
	NoContent    bool      `json:"no_content"`
	Domain       *string   `json:"domain,omitempty"`
	Type         *string   `json:"type,omitempty"`
	OCRText      *string   `json:"ocr_text,omitempty"`
}

// ItemListResponse is a page of items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Count int            `json:"count"`
}

// EssenceResponse is the JSON form of an item's essence.
type EssenceResponse struct {
	essence.Essence
	ModelName string    `json:"model_name"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemDetailResponse is an item with its essence.
type ItemDetailResponse struct {
	ItemResponse
	Essence *EssenceResponse `json:"essence,omitempty"`
}

// PreferencesResponse is the JSON form of the preferences. The API key itself is never returned.
type PreferencesResponse struct {
	SelectedFolder         *string    `json:"selected_folder"`
	AIMode                 string     `json:"ai_mode"`
	HideSolvedByDefault    bool       `json:"hide_solved_by_default"`
	HideNoContentByDefault bool       `json:"hide_no_content_by_default"`
	LastScanAt             *time.Time `json:"last_scan_at,omitempty"`
	HasAPIKey              bool       `json:"has_api_key"`
	AutoProcessOnStartup   bool       `json:"auto_process_on_startup"`
}

// PreferencesRequest is a partial preferences update. Omitted fields are unchanged.
type PreferencesRequest struct {
	SelectedFolder         *string `json:"selected_folder"`
	AIMode                 *string `json:"ai_mode"`
	HideSolvedByDefault    *bool   `json:"hide_solved_by_default"`
	HideNoContentByDefault *bool   `json:"hide_no_content_by_default"`
	OpenAIAPIKey           *string `json:"openai_api_key"`
	AutoProcessOnStartup   *bool   `json:"auto_process_on_startup"`
}

// InsightsResponse is the JSON form of the catalog aggregates.
type InsightsResponse struct {
	Totals  storage.Totals  `json:"totals"`
	Domains []storage.Count `json:"domains"`
	Types   []storage.Count `json:"types"`
	Actions []storage.Count `json:"actions"`
	Periods []storage.Count `json:"periods"`
	Topics  []storage.Count `json:"topics"`
}

func toItemResponse(it storage.Item) ItemResponse {
	return ItemResponse{
		ID:           it.ID,
		ContentURI:   it.ContentURI,
		SHA256:       it.SHA256,
		DisplayName:  it.DisplayName,
		MimeType:     it.MimeType,
		SizeBytes:    it.SizeBytes,
		Width:        it.Width,
		Height:       it.Height,
		CapturedAt:   it.CapturedAt.UTC(),
		IngestedAt:   it.IngestedAt.UTC(),
		Status:       string(it.Status),
		ErrorMessage: it.ErrorMessage,
		Solved:       it.Solved,
		NoContent:    it.NoContent,
		Domain:       it.Domain,
		Type:         it.Type,
		OCRText:      it.OCRText,
	}
}

func toItemList(items []storage.Item) ItemListResponse {
	out := ItemListResponse{Items: make([]ItemResponse, 0, len(items)), Count: len(items)}
	for _, it := range items {
		out.Items = append(out.Items, toItemResponse(it))
	}
	return out
}

func toItemDetailResponse(d service.ItemDetail) ItemDetailResponse {
	resp := ItemDetailResponse{ItemResponse: toItemResponse(d.Item)}
	if d.Essence != nil {
		resp.Essence = &EssenceResponse{
			Essence:   d.Essence.Essence,
			ModelName: d.Essence.ModelName,
			CreatedAt: d.Essence.CreatedAt.UTC(),
		}
	}
	return resp
}

func toPreferencesResponse(p storage.Preferences) PreferencesResponse {
	var lastScan *time.Time
	if !p.LastScanAt.IsZero() {
		t := p.LastScanAt.UTC()
		lastScan = &t
	}
	return PreferencesResponse{
		SelectedFolder:         p.SelectedFolder,
		AIMode:                 string(p.AIMode),
		HideSolvedByDefault:    p.HideSolvedByDefault,
		HideNoContentByDefault: p.HideNoContentByDefault,
		LastScanAt:             lastScan,
		HasAPIKey:              p.HasAPIKey(),
		AutoProcessOnStartup:   p.AutoProcessOnStartup,
	}
}

func toInsightsResponse(in service.Insights) InsightsResponse {
	return InsightsResponse{
		Totals:  in.Totals,
		Domains: nonNil(in.Domains),
		Types:   nonNil(in.Types),
		Actions: nonNil(in.Actions),
		Periods: nonNil(in.Periods),
		Topics:  nonNil(in.Topics),
	}
}

func nonNil(c []storage.Count) []storage.Count {
	if c == nil {
		return []storage.Count{}
	}
	return c
}
