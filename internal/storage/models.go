package storage

import (
	"encoding/json"
	"time"

	"github.com/Fauli/screenshot-organizer/internal/essence"
)

// Status is the processing state of a screenshot item.
type Status string

const (
	StatusNew        Status = "NEW"
	StatusProcessing Status = "PROCESSING"
	StatusDone       Status = "DONE"
	StatusFailed     Status = "FAILED"
)

// ParseStatus maps a stored status name to a Status. Unknown names map to StatusNew.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusNew, StatusProcessing, StatusDone, StatusFailed:
		return Status(s)
	default:
		return StatusNew
	}
}

// Item is one ingested screenshot.
type Item struct {
	ID           string
	ContentURI   string // Absolute path of the source file
	SHA256       string // Hex digest of the file bytes
	DisplayName  string
	MimeType     string
	SizeBytes    int64
	Width        int
	Height       int
	CapturedAt   time.Time
	IngestedAt   time.Time
	Status       Status
	ErrorMessage *string // Only set while Status is FAILED
	Solved       bool
	NoContent    bool
	Domain       *string
	Type         *string
	OCRText      *string
}

// EssenceRecord is the stored form of an essence. List fields are kept as JSON text.
type EssenceRecord struct {
	ScreenshotID       string
	Title              string
	SummaryBulletsJSON string
	TopicsJSON         string
	EntitiesJSON       string
	SuggestedAction    *string
	Confidence         float64
	ModelName          string
	CreatedAt          time.Time
}

// NewEssenceRecord converts an extracted essence into its stored form.
func NewEssenceRecord(screenshotID string, e essence.Essence, modelName string, createdAt time.Time) *EssenceRecord {
	action := string(e.SuggestedAction)
	return &EssenceRecord{
		ScreenshotID:       screenshotID,
		Title:              e.Title,
		SummaryBulletsJSON: encodeJSONList(e.SummaryBullets),
		TopicsJSON:         encodeJSONList(e.Topics),
		EntitiesJSON:       encodeJSONList(e.Entities),
		SuggestedAction:    &action,
		Confidence:         e.Confidence,
		ModelName:          modelName,
		CreatedAt:          createdAt,
	}
}

// Essence decodes the record. Malformed JSON columns decode as empty lists.
// Domain and content type live on the item and are passed in.
func (r *EssenceRecord) Essence(domain, contentType *string) essence.Essence {
	e := essence.Essence{
		Title:           r.Title,
		Type:            essence.TypeUnknown,
		Domain:          domain,
		SummaryBullets:  decodeStrings(r.SummaryBulletsJSON),
		Topics:          decodeStrings(r.TopicsJSON),
		Entities:        decodeEntities(r.EntitiesJSON),
		SuggestedAction: essence.ActionUnknown,
		Confidence:      r.Confidence,
	}
	if contentType != nil {
		e.Type = essence.ParseContentType(*contentType)
	}
	if r.SuggestedAction != nil {
		e.SuggestedAction = essence.ParseSuggestedAction(*r.SuggestedAction)
	}
	return e
}

// SearchDocument is the tokenizable text indexed for one item.
type SearchDocument struct {
	ScreenshotID   string
	Title          string
	SummaryBullets []string
	Topics         []string
	Entities       []string
	OCRText        string
	Domain         string
	Type           string
}

// ListFilter selects items by processing progress.
type ListFilter string

const (
	FilterAll       ListFilter = "ALL"
	FilterProcessed ListFilter = "PROCESSED"
	FilterPending   ListFilter = "PENDING"
)

// ListQuery describes a catalog listing. Zero values mean "no constraint".
type ListQuery struct {
	Filter           ListFilter
	IncludeSolved    bool
	IncludeNoContent bool
	Domain           string
	Type             string
	Action           string
	Topic            string
	From             time.Time
	To               time.Time
	Limit            int
	Offset           int
}

// DoneUpdate carries the fields written when an item finishes processing.
type DoneUpdate struct {
	Domain    *string
	Type      string
	OCRText   *string
	NoContent bool
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func encodeJSONList(v any) string {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return "[]"
	}
	return string(b)
}

func decodeStrings(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func decodeEntities(raw string) []essence.EntityRef {
	var refs []struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(raw), &refs); err != nil {
		return []essence.EntityRef{}
	}
	out := make([]essence.EntityRef, 0, len(refs))
	for _, r := range refs {
		out = append(out, essence.EntityRef{Kind: essence.ParseEntityKind(r.Kind), Name: r.Name})
	}
	return out
}

// EntityNames returns the entity names stored in an entities JSON column.
func EntityNames(entitiesJSON string) []string {
	refs := decodeEntities(entitiesJSON)
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return names
}

// DecodeStrings decodes a JSON string list column, returning an empty list on malformed input.
func DecodeStrings(raw string) []string {
	return decodeStrings(raw)
}
