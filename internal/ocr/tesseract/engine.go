// Package tesseract implements ocr.Engine with the Tesseract library.
package tesseract

import (
	"context"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/Fauli/screenshot-organizer/internal/ocr"
)

// Engine runs Tesseract through gosseract. A single client is reused and
// calls are serialized.
type Engine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// New creates an Engine for the given Tesseract language codes (e.g. "eng").
func New(languages ...string) (*Engine, error) {
	client := gosseract.NewClient()
	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to set ocr language: %w", err)
		}
	}
	return &Engine{client: client}, nil
}

// Close releases the Tesseract client.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client.Close()
}

// Recognize extracts text, blocks and lines from an encoded image.
func (e *Engine) Recognize(ctx context.Context, img []byte) (*ocr.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.client.SetImageFromBytes(img); err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to recognize text: %w", err)
	}

	blockBoxes, err := e.client.GetBoundingBoxes(gosseract.RIL_BLOCK)
	if err != nil {
		return nil, fmt.Errorf("failed to read block boxes: %w", err)
	}
	lineBoxes, err := e.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("failed to read line boxes: %w", err)
	}

	return &ocr.Result{
		FullText: text,
		Blocks:   assemble(blockBoxes, lineBoxes),
	}, nil
}

// assemble groups lines under the block whose rectangle contains the line's centre.
// Lines outside every block are dropped.
func assemble(blockBoxes, lineBoxes []gosseract.BoundingBox) []ocr.Block {
	blocks := make([]ocr.Block, 0, len(blockBoxes))
	for _, bb := range blockBoxes {
		box := bb.Box
		blocks = append(blocks, ocr.Block{
			Text: strings.TrimSpace(bb.Word),
			Box:  &box,
		})
	}

	for _, lb := range lineBoxes {
		text := strings.TrimSpace(lb.Word)
		if text == "" {
			continue
		}
		centre := image.Pt((lb.Box.Min.X+lb.Box.Max.X)/2, (lb.Box.Min.Y+lb.Box.Max.Y)/2)
		for i := range blocks {
			if centre.In(*blocks[i].Box) {
				box := lb.Box
				blocks[i].Lines = append(blocks[i].Lines, ocr.Line{Text: text, Box: &box})
				break
			}
		}
	}
	return blocks
}
