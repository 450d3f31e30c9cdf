package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
	"github.com/Fauli/screenshot-organizer/internal/essence"
	"github.com/Fauli/screenshot-organizer/internal/llm"
)

const (
	cloudMaxCompletionTokens = 1000
	cloudDefaultTitle        = "No content"
	cloudDefaultConfidence   = 0.8
)

const systemPrompt = `You are analyzing a screenshot to extract its essence for organizing and searching later. Respond with ONLY valid JSON (no markdown, no explanation).

STEP 1: Determine if this screenshot has meaningful content.

Set "no_content" to TRUE if:
- Plain wallpaper, background image, solid color, gradient
- Lock screen without notifications
- Empty home screen with just app icons
- Blank, loading, or error screens
- Status bar / navigation bar only
- Abstract images, patterns, decorative graphics
- Photos with no text or informational value

Set "no_content" to FALSE if there's actual content worth saving.

STEP 2: If no_content is FALSE, extract the MOST IMPORTANT information:

- **title**: The main subject - what would you search for to find this? Be specific!
  Good: "iPhone 15 Pro Max pricing comparison"
  Bad: "Product page" or "Screenshot"

- **summary_bullets**: The KEY facts someone saved this screenshot for. What's the actionable info?
  - Prices, dates, names, addresses, instructions, key quotes
  - What would someone need to remember from this?

- **topics**: Specific, searchable categories (3-5 max)
  Good: ["iPhone", "Apple", "pricing", "comparison"]
  Bad: ["technology", "phone", "screen"]

- **entities**: Important names that help organize
  - People, companies, products, places, brands mentioned

- **domain**: Website if visible (helps grouping)

- **suggested_action**: What will the user likely do with this info?

JSON schema:
{
  "no_content": false,
  "title": "Specific descriptive title (max 60 chars)",
  "type": "article|product|social|chat|code|recipe|map|unknown",
  "domain": "example.com or null",
  "summary_bullets": ["Most important fact 1", "Key detail 2", "Actionable info 3"],
  "topics": ["specific", "searchable", "topics"],
  "entities": [{"kind": "person|place|product|company|other", "name": "Name"}],
  "suggested_action": "read|buy|try|reference|decide|idea|unknown",
  "confidence": 0.0 to 1.0
}

If no_content is true, provide a brief descriptive title but leave arrays empty.`

// VisionClient sends one image plus instructions to a vision model.
type VisionClient interface {
	ChatVision(ctx context.Context, req llm.VisionRequest) (string, error)
}

// Cloud derives essences with a vision-language model.
type Cloud struct {
	client VisionClient
	model  string
}

// NewCloud creates a cloud extractor. model is recorded as the essence's model name.
func NewCloud(client VisionClient, model string) *Cloud {
	return &Cloud{client: client, model: model}
}

// Name returns the configured model.
func (c *Cloud) Name() string {
	return c.model
}

// Extract sends the image and any OCR text to the model and decodes its answer.
func (c *Cloud) Extract(ctx context.Context, in Input) essence.Result {
	logger := contextutil.LoggerFromContext(ctx)

	jpeg, err := llm.PrepareJPEG(in.ImageBytes)
	if err != nil {
		logger.WarnContext(ctx, "cloud extraction rejected image", "screenshot_id", in.ScreenshotID, "error", err)
		return essence.Failure(err.Error(), !errors.Is(err, llm.ErrInvalidImage))
	}

	content, err := c.client.ChatVision(ctx, llm.VisionRequest{
		System:              systemPrompt,
		Text:                userPrompt(in.OCRText),
		JPEG:                jpeg,
		Detail:              llm.DetailLow,
		MaxCompletionTokens: cloudMaxCompletionTokens,
	})
	if err != nil {
		logger.WarnContext(ctx, "cloud extraction request failed", "screenshot_id", in.ScreenshotID, "error", err)
		return essence.Failure(err.Error(), !errors.Is(err, llm.ErrInvalidImage))
	}

	resp, err := parseCloudResponse(content)
	if err != nil {
		logger.WarnContext(ctx, "cloud extraction returned unparseable content", "screenshot_id", in.ScreenshotID, "error", err)
		return essence.Failure(fmt.Sprintf("failed to parse model response: %v", err), true)
	}

	return essence.Success(resp.essence(), c.model, resp.NoContent)
}

func userPrompt(ocrText *string) string {
	var b strings.Builder
	b.WriteString("Analyze this screenshot and extract the essence.")
	if ocrText != nil && strings.TrimSpace(*ocrText) != "" {
		b.WriteString("\n\nOCR text detected:\n")
		b.WriteString(*ocrText)
	}
	return b.String()
}

type cloudEntity struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

type cloudResponse struct {
	NoContent       bool          `json:"no_content"`
	Title           string        `json:"title"`
	Type            string        `json:"type"`
	Domain          *string       `json:"domain"`
	SummaryBullets  []string      `json:"summary_bullets"`
	Topics          []string      `json:"topics"`
	Entities        []cloudEntity `json:"entities"`
	SuggestedAction string        `json:"suggested_action"`
	Confidence      float64       `json:"confidence"`
}

func parseCloudResponse(content string) (*cloudResponse, error) {
	body := stripFences(content)
	if body == "" {
		return nil, errors.New("empty content")
	}

	resp := &cloudResponse{
		Title:           cloudDefaultTitle,
		Type:            string(essence.TypeUnknown),
		SuggestedAction: string(essence.ActionUnknown),
		Confidence:      cloudDefaultConfidence,
	}
	if err := json.Unmarshal([]byte(body), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (r *cloudResponse) essence() essence.Essence {
	var domain *string
	if r.Domain != nil {
		d := strings.ToLower(strings.TrimSpace(*r.Domain))
		if d != "" && d != "null" {
			domain = &d
		}
	}

	entities := make([]essence.EntityRef, 0, len(r.Entities))
	for _, e := range r.Entities {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		entities = append(entities, essence.EntityRef{Kind: essence.ParseEntityKind(e.Kind), Name: name})
	}

	title := strings.TrimSpace(r.Title)
	if title == "" {
		title = cloudDefaultTitle
	}

	confidence := r.Confidence
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	return essence.Essence{
		Title:           title,
		Type:            essence.ParseContentType(r.Type),
		Domain:          domain,
		SummaryBullets:  nonEmpty(r.SummaryBullets),
		Topics:          nonEmpty(r.Topics),
		Entities:        entities,
		SuggestedAction: essence.ParseSuggestedAction(r.SuggestedAction),
		Confidence:      confidence,
	}
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
