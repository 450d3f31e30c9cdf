package extractor

import (
	"context"
	"image"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
	"github.com/Fauli/screenshot-organizer/internal/essence"
	"github.com/Fauli/screenshot-organizer/internal/ocr"
)

const (
	// HeuristicModel is the model name recorded for rule-based essences.
	HeuristicModel = "ocr-heuristic-v1"
	// HeuristicConfidence is the fixed confidence of rule-based essences.
	HeuristicConfidence = 0.4

	untitled      = "Untitled Screenshot"
	maxBullets    = 3
	maxTopics     = 5
	maxEntities   = 5
	articleLength = 200
)

// Heuristic derives essences from OCR text alone.
type Heuristic struct{}

// NewHeuristic creates a rule-based extractor.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Name returns HeuristicModel.
func (h *Heuristic) Name() string {
	return HeuristicModel
}

// Extract classifies the OCR text of in and builds an essence from it.
func (h *Heuristic) Extract(ctx context.Context, in Input) essence.Result {
	logger := contextutil.LoggerFromContext(ctx)

	if in.OCRText == nil || strings.TrimSpace(*in.OCRText) == "" {
		return essence.Failure("no text extracted", true)
	}
	text := *in.OCRText

	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return essence.Failure("no text content found", false)
	}

	domain := extractDomain(text)
	contentType := classify(text, domain)
	title := extractTitle(lines, in.Blocks)

	e := essence.Essence{
		Title:           title,
		Type:            contentType,
		Domain:          domain,
		SummaryBullets:  extractBullets(lines, title),
		Topics:          extractTopics(text),
		Entities:        extractEntities(text),
		SuggestedAction: suggestAction(contentType, text),
		Confidence:      HeuristicConfidence,
	}

	logger.DebugContext(ctx, "heuristic essence extracted",
		"screenshot_id", in.ScreenshotID,
		"type", e.Type,
		"topics", len(e.Topics),
	)

	return essence.Success(e, HeuristicModel, false)
}

func nonBlankLines(text string) []string {
	var out []string
	for _, l := range lineBreak.Split(text, -1) {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

func extractDomain(text string) *string {
	m := domainPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	d := strings.ToLower(m[1])
	return &d
}

func countContained(text string, needles []string) int {
	n := 0
	for _, s := range needles {
		if strings.Contains(text, s) {
			n++
		}
	}
	return n
}

func domainContainsAny(domain *string, parts []string) bool {
	if domain == nil {
		return false
	}
	for _, p := range parts {
		if strings.Contains(*domain, p) {
			return true
		}
	}
	return false
}

// classify applies the content rules in priority order; the first match wins.
func classify(text string, domain *string) essence.ContentType {
	lower := strings.ToLower(text)

	switch {
	case countContained(lower, codeIndicators) >= 3:
		return essence.TypeCode
	case timestampPattern.MatchString(lower) && countContained(lower, chatIndicators) >= 2:
		return essence.TypeChat
	case countContained(lower, recipeIndicators) >= 3:
		return essence.TypeRecipe
	case countContained(lower, productIndicators) >= 2:
		return essence.TypeProduct
	case domainContainsAny(domain, socialDomains) || countContained(lower, socialIndicators) >= 3:
		return essence.TypeSocial
	case domainContainsAny(domain, mapDomains) || countContained(lower, mapIndicators) >= 2:
		return essence.TypeMap
	case utf8.RuneCountInString(text) > articleLength:
		return essence.TypeArticle
	default:
		return essence.TypeUnknown
	}
}

func lengthBetween(s string, lo, hi int) bool {
	n := utf8.RuneCountInString(s)
	return n >= lo && n <= hi
}

func area(r *image.Rectangle) int {
	if r == nil {
		return 0
	}
	return r.Dx() * r.Dy()
}

func extractTitle(lines []string, blocks []ocr.Block) string {
	var boxed []ocr.Block
	for _, b := range blocks {
		if b.Box != nil {
			boxed = append(boxed, b)
		}
	}
	sort.SliceStable(boxed, func(i, j int) bool {
		return area(boxed[i].Box) > area(boxed[j].Box)
	})

	for _, b := range boxed {
		t := strings.TrimSpace(b.Text)
		if lengthBetween(t, 5, 150) && !strings.Contains(t, "\n") {
			return t
		}

		blockLines := append([]ocr.Line(nil), b.Lines...)
		sort.SliceStable(blockLines, func(i, j int) bool {
			return area(blockLines[i].Box) > area(blockLines[j].Box)
		})
		for _, l := range blockLines {
			t := strings.TrimSpace(l.Text)
			if lengthBetween(t, 5, 150) {
				return t
			}
		}
	}

	for _, l := range lines {
		t := strings.TrimSpace(l)
		if lengthBetween(t, 5, 150) &&
			!strings.HasPrefix(t, "http") &&
			!leadingTimestamp.MatchString(t) &&
			!phoneLike.MatchString(t) {
			return t
		}
	}

	if len(lines) == 0 {
		return untitled
	}
	return truncateRunes(lines[0], 100)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func extractBullets(lines []string, title string) []string {
	titleLower := strings.ToLower(title)
	bullets := []string{}
	seen := make(map[string]struct{})

	for _, l := range lines {
		t := strings.TrimSpace(l)
		if strings.ToLower(t) == titleLower ||
			utf8.RuneCountInString(t) < 10 ||
			strings.HasPrefix(t, "http") ||
			!lengthBetween(t, 10, 200) {
			continue
		}

		cleaned := strings.TrimPrefix(t, "•")
		cleaned = strings.TrimPrefix(cleaned, "-")
		cleaned = strings.TrimPrefix(cleaned, "*")
		cleaned = strings.TrimSpace(cleaned)

		if utf8.RuneCountInString(cleaned) < 10 {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		bullets = append(bullets, cleaned)
		if len(bullets) >= maxBullets {
			break
		}
	}
	return bullets
}

func extractTopics(text string) []string {
	words := strings.Fields(nonWordPattern.ReplaceAllString(strings.ToLower(text), " "))

	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		if len(w) < 4 {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	var candidates []string
	for _, w := range order {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if counts[w] < 2 || len(w) < 5 || digitsOnly.MatchString(w) || !strings.ContainsAny(w, "aeiou") {
			continue
		}
		candidates = append(candidates, w)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return counts[candidates[i]] > counts[candidates[j]]
	})
	if len(candidates) > maxTopics {
		candidates = candidates[:maxTopics]
	}

	topics := make([]string, 0, len(candidates))
	for _, w := range candidates {
		topics = append(topics, strings.ToUpper(w[:1])+w[1:])
	}
	return topics
}

func extractEntities(text string) []essence.EntityRef {
	var found []essence.EntityRef
	for _, name := range namePattern.FindAllString(text, 5) {
		if len(strings.Split(name, " ")) <= 4 {
			found = append(found, essence.EntityRef{Kind: essence.KindPerson, Name: name})
		}
	}
	for _, m := range mentionPattern.FindAllStringSubmatch(text, 3) {
		found = append(found, essence.EntityRef{Kind: essence.KindPerson, Name: m[1]})
	}

	entities := []essence.EntityRef{}
	seen := make(map[string]struct{})
	for _, e := range found {
		key := strings.ToLower(e.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		entities = append(entities, e)
		if len(entities) >= maxEntities {
			break
		}
	}
	return entities
}

func suggestAction(t essence.ContentType, text string) essence.SuggestedAction {
	lower := strings.ToLower(text)

	switch t {
	case essence.TypeArticle:
		return essence.ActionRead
	case essence.TypeProduct:
		if strings.Contains(lower, "compare") || strings.Contains(lower, "vs") {
			return essence.ActionDecide
		}
		return essence.ActionBuy
	case essence.TypeRecipe:
		return essence.ActionTry
	case essence.TypeCode, essence.TypeSocial, essence.TypeMap, essence.TypeChat:
		return essence.ActionReference
	}

	switch {
	case strings.Contains(lower, "idea") || strings.Contains(lower, "thought"):
		return essence.ActionIdea
	case strings.Contains(lower, "decide") || strings.Contains(lower, "choose"):
		return essence.ActionDecide
	default:
		return essence.ActionUnknown
	}
}
