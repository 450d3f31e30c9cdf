// Package essence defines the structured summary derived from a screenshot
// and the result type extractors return.
package essence

import "strings"

// ContentType classifies what a screenshot shows.
type ContentType string

const (
	TypeArticle ContentType = "article"
	TypeProduct ContentType = "product"
	TypeSocial  ContentType = "social"
	TypeChat    ContentType = "chat"
	TypeCode    ContentType = "code"
	TypeRecipe  ContentType = "recipe"
	TypeMap     ContentType = "map"
	TypeUnknown ContentType = "unknown"
)

// ContentTypes lists every known content type.
var ContentTypes = []ContentType{
	TypeArticle, TypeProduct, TypeSocial, TypeChat, TypeCode, TypeRecipe, TypeMap, TypeUnknown,
}

// ParseContentType maps a case-insensitive name to a ContentType.
// Unknown or empty values degrade to TypeUnknown.
func ParseContentType(s string) ContentType {
	v := ContentType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range ContentTypes {
		if t == v {
			return t
		}
	}
	return TypeUnknown
}

// SuggestedAction is what the user is likely to do with a screenshot.
type SuggestedAction string

const (
	ActionRead      SuggestedAction = "read"
	ActionBuy       SuggestedAction = "buy"
	ActionTry       SuggestedAction = "try"
	ActionReference SuggestedAction = "reference"
	ActionDecide    SuggestedAction = "decide"
	ActionIdea      SuggestedAction = "idea"
	ActionUnknown   SuggestedAction = "unknown"
)

// SuggestedActions lists every known action.
var SuggestedActions = []SuggestedAction{
	ActionRead, ActionBuy, ActionTry, ActionReference, ActionDecide, ActionIdea, ActionUnknown,
}

// ParseSuggestedAction maps a case-insensitive name to a SuggestedAction.
// Unknown or empty values degrade to ActionUnknown.
func ParseSuggestedAction(s string) SuggestedAction {
	v := SuggestedAction(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range SuggestedActions {
		if a == v {
			return a
		}
	}
	return ActionUnknown
}

// EntityKind classifies a named entity.
type EntityKind string

const (
	KindPerson  EntityKind = "person"
	KindOrg     EntityKind = "org"
	KindProduct EntityKind = "product"
	KindPlace   EntityKind = "place"
	KindOther   EntityKind = "other"
)

// ParseEntityKind maps the kinds a model may answer with onto the known set.
func ParseEntityKind(s string) EntityKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "person":
		return KindPerson
	case "org", "company", "organization":
		return KindOrg
	case "product":
		return KindProduct
	case "place", "location":
		return KindPlace
	default:
		return KindOther
	}
}

// EntityRef is a named entity mentioned in a screenshot.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	Name string     `json:"name"`
}

// Essence is the structured summary of a screenshot.
type Essence struct {
	Title           string          `json:"title"`
	Type            ContentType     `json:"type"`
	Domain          *string         `json:"domain,omitempty"`
	SummaryBullets  []string        `json:"summary_bullets"`
	Topics          []string        `json:"topics"`
	Entities        []EntityRef     `json:"entities"`
	SuggestedAction SuggestedAction `json:"suggested_action"`
	Confidence      float64         `json:"confidence"`
}

// EntityNames returns the names of all entities in order.
func (e Essence) EntityNames() []string {
	names := make([]string, 0, len(e.Entities))
	for _, ent := range e.Entities {
		names = append(names, ent.Name)
	}
	return names
}
