package extractor

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// stripFences returns the body of the first fenced code block in content,
// or the trimmed content when it has none. Fence markers that markdown does
// not recognise, such as a closing fence on the same line as the body, are
// trimmed from either end.
func stripFences(content string) string {
	src := []byte(content)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var body []byte
	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var buf bytes.Buffer
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		body = buf.Bytes()
		found = true
		return ast.WalkStop, nil
	})

	if !found {
		return trimFenceMarkers(content)
	}
	return trimFenceMarkers(string(body))
}

// trimFenceMarkers removes a leading ``` with its optional language tag and
// a trailing ```.
func trimFenceMarkers(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		s = strings.TrimLeftFunc(rest, unicode.IsLetter)
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
