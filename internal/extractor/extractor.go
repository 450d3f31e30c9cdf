// Package extractor derives an essence from a screenshot, either from its OCR
// text with fixed rules or by asking a vision model.
package extractor

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_extractor.go -package=mocks github.com/Fauli/screenshot-organizer/internal/extractor Extractor

import (
	"context"

	"github.com/Fauli/screenshot-organizer/internal/essence"
	"github.com/Fauli/screenshot-organizer/internal/ocr"
)

// Input is what an extractor gets to work with.
type Input struct {
	ScreenshotID string
	ImageBytes   []byte
	// OCRText is nil when recognition found nothing.
	OCRText *string
	Blocks  []ocr.Block
}

// Extractor turns an Input into an essence.Result. Implementations never
// return errors; every failure is reported as a Failure result.
type Extractor interface {
	Extract(ctx context.Context, in Input) essence.Result
	Name() string
}
