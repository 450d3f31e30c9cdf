package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/Fauli/screenshot-organizer/internal/contextutil"
	"github.com/Fauli/screenshot-organizer/internal/essence"
	"github.com/Fauli/screenshot-organizer/internal/service"
)

// CardHandler renders an item's essence as an HTML page.
type CardHandler struct {
	items    ItemService
	parser   goldmark.Markdown
	template *template.Template
}

// cardPageData holds template data for rendered cards.
type cardPageData struct {
	Title   string
	Name    string
	Status  string
	Content template.HTML
}

// NewCardHandler creates a new handler for item cards.
func NewCardHandler(items ItemService) *CardHandler {
	tmpl := template.Must(template.New("card").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} · Screenshot Vault</title>
  <style>
    :root {
      color-scheme: dark;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.7;
      background: #050b18;
      color: #e4ecff;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid rgba(148, 163, 184, 0.2);
      padding-bottom: 1.5rem;
    }
    article {
      background: rgba(12, 19, 35, 0.85);
      border: 1px solid rgba(99, 102, 241, 0.2);
      border-radius: 16px;
      padding: 2rem;
    }
    article h1 {
      margin-top: 0;
      color: #fff;
    }
    article h2 {
      color: #c7d2fe;
      margin-top: 1.5rem;
    }
    pre {
      background: #0f172a;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 10px;
      white-space: pre-wrap;
    }
    code {
      font-family: 'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, monospace;
      background: rgba(99, 102, 241, 0.18);
      padding: 2px 5px;
      border-radius: 6px;
    }
    pre code {
      background: transparent;
      padding: 0;
    }
    .meta {
      color: #94a3b8;
      font-size: 0.95rem;
    }
    @media (max-width: 640px) {
      body {
        padding: 1rem;
      }
      article {
        padding: 1.25rem;
      }
    }
  </style>
</head>
<body>
  <header>
    <p class="meta">{{.Name}} &middot; {{.Status}}</p>
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

	return &CardHandler{
		items: items,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: tmpl,
	}
}

// ServeHTTP handles GET /api/items/{id}/card.
func (h *CardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	detail, err := h.items.Get(ctx, itemID(r))
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to get item")
		return
	}

	var buf bytes.Buffer
	if err := h.parser.Convert([]byte(cardMarkdown(detail)), &buf); err != nil {
		logger.ErrorContext(ctx, "failed to render card", "screenshot_id", detail.Item.ID, "error", err)
		http.Error(w, "failed to render card", http.StatusInternalServerError)
		return
	}

	title := detail.Item.DisplayName
	if detail.Essence != nil && detail.Essence.Essence.Title != "" {
		title = detail.Essence.Essence.Title
	}
	page := cardPageData{
		Title:   title,
		Name:    detail.Item.DisplayName,
		Status:  string(detail.Item.Status),
		Content: template.HTML(buf.String()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, page); err != nil {
		logger.ErrorContext(ctx, "failed to execute card template", "screenshot_id", detail.Item.ID, "error", err)
	}
}

// cardMarkdown lays out an item as markdown. Raw HTML in recognized text is
// dropped by the renderer.
func cardMarkdown(d service.ItemDetail) string {
	var b strings.Builder

	if d.Essence == nil {
		fmt.Fprintf(&b, "# %s\n\nNot processed yet (%s).\n", d.Item.DisplayName, d.Item.Status)
		if d.Item.ErrorMessage != nil {
			fmt.Fprintf(&b, "\n> %s\n", *d.Item.ErrorMessage)
		}
		return b.String()
	}

	e := d.Essence.Essence
	fmt.Fprintf(&b, "# %s\n\n", e.Title)

	meta := []string{"**Type:** " + string(e.Type)}
	if e.Domain != nil {
		meta = append(meta, "**Domain:** "+*e.Domain)
	}
	if e.SuggestedAction != essence.ActionUnknown {
		meta = append(meta, "**Action:** "+string(e.SuggestedAction))
	}
	meta = append(meta, fmt.Sprintf("**Confidence:** %.0f%%", e.Confidence*100))
	b.WriteString(strings.Join(meta, " · "))
	b.WriteString("\n")

	if len(e.SummaryBullets) > 0 {
		b.WriteString("\n## Summary\n\n")
		for _, s := range e.SummaryBullets {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	if len(e.Topics) > 0 {
		b.WriteString("\n## Topics\n\n")
		tags := make([]string, 0, len(e.Topics))
		for _, t := range e.Topics {
			tags = append(tags, "`"+t+"`")
		}
		b.WriteString(strings.Join(tags, " "))
		b.WriteString("\n")
	}
	if len(e.Entities) > 0 {
		b.WriteString("\n## Entities\n\n")
		for _, ent := range e.Entities {
			fmt.Fprintf(&b, "- **%s** (%s)\n", ent.Name, ent.Kind)
		}
	}
	if d.Item.OCRText != nil && strings.TrimSpace(*d.Item.OCRText) != "" {
		fence := "```"
		for strings.Contains(*d.Item.OCRText, fence) {
			fence += "`"
		}
		fmt.Fprintf(&b, "\n## Text\n\n%stext\n%s\n%s\n", fence, strings.TrimRight(*d.Item.OCRText, "\n"), fence)
	}
	fmt.Fprintf(&b, "\n*Extracted by %s*\n", d.Essence.ModelName)
	return b.String()
}
